package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// FindByStore devuelve los registros de stock de una tienda con la tienda embebida.
func (r *InventoryRepo) FindByStore(ctx context.Context, storeID string) ([]*entity.Inventory, error) {
	query := `
		SELECT i.id, i.product_id, i.store_id, i.quantity, i.min_stock, i.created_at, i.updated_at,
		       s.id, s.name, s.location, s.created_at, s.updated_at
		FROM inventories i
		JOIN stores s ON s.id = i.store_id
		WHERE i.store_id = $1
		ORDER BY i.created_at`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("find inventories by store: %w", err)
	}
	defer rows.Close()
	return scanInventoriesWithStore(rows)
}

// FindByProducts devuelve los registros de stock de un conjunto de productos.
func (r *InventoryRepo) FindByProducts(ctx context.Context, productIDs []string) ([]*entity.Inventory, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, product_id, store_id, quantity, min_stock, created_at, updated_at
		FROM inventories WHERE product_id = ANY($1)
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("find inventories by products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.StoreID, &inv.Quantity,
			&inv.MinStock, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Create inserta un registro de stock nuevo. El constraint único sobre
// (product_id, store_id) hace fallar duplicados.
func (r *InventoryRepo) Create(ctx context.Context, inventory *entity.Inventory) error {
	if inventory.ID == "" {
		inventory.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventories (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		inventory.ID, inventory.ProductID, inventory.StoreID, inventory.Quantity, inventory.MinStock,
	).Scan(&inventory.CreatedAt, &inventory.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

// GetForUpdate lee el stock bloqueando la fila (SELECT FOR UPDATE). Devuelve nil, nil si no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, store_id, quantity, min_stock, created_at, updated_at
		FROM inventories WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&inv.ID, &inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.MinStock,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// UpdateQuantity persiste cantidad y updatedAt de una fila ya bloqueada.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, inventory *entity.Inventory) error {
	query := `
		UPDATE inventories SET quantity = $3, updated_at = $4
		WHERE product_id = $1 AND store_id = $2`
	_, err := r.q.Exec(ctx, query,
		inventory.ProductID, inventory.StoreID, inventory.Quantity, inventory.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// AddQuantityUpsert suma delta al registro, creándolo si no existe. Si el insert
// pierde la carrera contra una creación concurrente, el conflicto sobre
// (product_id, store_id) incrementa la fila ganadora.
func (r *InventoryRepo) AddQuantityUpsert(ctx context.Context, productID, storeID string, delta, minStock int64) error {
	query := `
		INSERT INTO inventories (id, product_id, store_id, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = inventories.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), productID, storeID, delta, minStock)
	if err != nil {
		return fmt.Errorf("upsert inventory quantity: %w", err)
	}
	return nil
}

// FindLowStock devuelve todos los registros con quantity < min_stock, con tienda embebida.
func (r *InventoryRepo) FindLowStock(ctx context.Context) ([]*entity.Inventory, error) {
	query := `
		SELECT i.id, i.product_id, i.store_id, i.quantity, i.min_stock, i.created_at, i.updated_at,
		       s.id, s.name, s.location, s.created_at, s.updated_at
		FROM inventories i
		JOIN stores s ON s.id = i.store_id
		WHERE i.quantity < i.min_stock
		ORDER BY (i.min_stock - i.quantity) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find low stock inventories: %w", err)
	}
	defer rows.Close()
	return scanInventoriesWithStore(rows)
}

func scanInventoriesWithStore(rows pgx.Rows) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		var store entity.Store
		if err := rows.Scan(
			&inv.ID, &inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.MinStock,
			&inv.CreatedAt, &inv.UpdatedAt,
			&store.ID, &store.Name, &store.Location, &store.CreatedAt, &store.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		inv.Store = &store
		list = append(list, &inv)
	}
	return list, rows.Err()
}
