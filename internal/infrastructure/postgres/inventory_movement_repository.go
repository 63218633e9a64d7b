package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventory-stores/internal/domain"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El log es append-only: no hay UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento. Revalida el tipo aunque el caller ya lo haya
// validado: las filas de movimiento son registro de auditoría permanente.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if !movement.Type.Valid() {
		return domain.NewInvalidMovementType(string(movement.Type))
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.Timestamp.IsZero() {
		movement.Timestamp = time.Now()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, source_store_id, target_store_id, quantity, type, timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.ProductID,
		nullIfEmpty(movement.SourceStoreID), nullIfEmpty(movement.TargetStoreID),
		movement.Quantity, string(movement.Type), movement.Timestamp,
	).Scan(&movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, source_store_id, target_store_id, quantity, type, timestamp, created_at
		FROM inventory_movements WHERE product_id = $1
		ORDER BY timestamp DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var sourceStoreID, targetStoreID *string
		var movType string
		if err := rows.Scan(&m.ID, &m.ProductID, &sourceStoreID, &targetStoreID,
			&m.Quantity, &movType, &m.Timestamp, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(movType)
		if sourceStoreID != nil {
			m.SourceStoreID = *sourceStoreID
		}
		if targetStoreID != nil {
			m.TargetStoreID = *targetStoreID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
