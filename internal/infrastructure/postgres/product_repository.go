package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, category, price, active, created_at, updated_at`

// Create persiste un producto nuevo (activo por defecto).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.Active = true
	query := `
		INSERT INTO products (id, sku, name, description, category, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.Category, product.Price,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateProduct(product.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySKU obtiene un producto por SKU. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.getOne(ctx, query, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables de un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, category = $5, price = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.Category, product.Price,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateProduct(product.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// FindAll lista productos activos según filtro y paginación; devuelve también el total sin paginar.
func (r *ProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter, page repository.Page) ([]*entity.Product, int, error) {
	where := ` WHERE p.active = true`
	args := []any{}
	pos := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND p.category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.MinPrice != nil {
		where += fmt.Sprintf(" AND p.price >= $%d", pos)
		args = append(args, *filter.MinPrice)
		pos++
	}
	if filter.MaxPrice != nil {
		where += fmt.Sprintf(" AND p.price <= $%d", pos)
		args = append(args, *filter.MaxPrice)
		pos++
	}
	if filter.StoreID != "" {
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM inventories i WHERE i.product_id = p.id AND i.store_id = $%d)", pos)
		args = append(args, filter.StoreID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT p.id, p.sku, p.name, p.description, p.category, p.price, p.active, p.created_at, p.updated_at
		FROM products p` + where + ` ORDER BY p.created_at DESC`
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, page.Limit, page.Offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price,
			&p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el producto como inactivo. Devuelve false si no existe.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
