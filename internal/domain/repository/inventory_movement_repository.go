package repository

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del log de movimientos.
// Append-only: no existen operaciones de actualización ni borrado.
type InventoryMovementRepository interface {
	// Create persiste un movimiento. Revalida el tipo en el borde de
	// almacenamiento y estampa timestamp con "ahora" si viene en cero.
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct devuelve el historial de movimientos de un producto,
	// más reciente primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error)
}
