package repository

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	// GetByID devuelve nil, nil si la tienda no existe.
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	FindAll(ctx context.Context) ([]*entity.Store, error)
	// ExistsAll reporta si todos los IDs resuelven a una tienda existente,
	// en una sola consulta batch. Vacuamente true para lista vacía.
	ExistsAll(ctx context.Context, ids []string) (bool, error)
}
