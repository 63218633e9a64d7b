package inventory

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// transferencias: si fn devuelve error, todo se revierte, incluido el
// registro en el log de movimientos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
