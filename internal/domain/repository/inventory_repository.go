package repository

import (
	"context"

	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
)

// InventoryRepository define el puerto del libro de stock por tienda+producto.
// Las lecturas para mutación deben pasar por GetForUpdate dentro de una
// transacción: no se permite cachear cantidades fuera del lock de fila.
type InventoryRepository interface {
	// FindByStore devuelve todos los registros de una tienda con la tienda embebida.
	// Slice vacío si no hay registros.
	FindByStore(ctx context.Context, storeID string) ([]*entity.Inventory, error)
	// FindByProducts devuelve los registros de stock de un conjunto de productos.
	FindByProducts(ctx context.Context, productIDs []string) ([]*entity.Inventory, error)
	// Create inserta un registro nuevo. La violación del único (productId, storeId)
	// se propaga como error de creación genérico.
	Create(ctx context.Context, inventory *entity.Inventory) error
	// GetForUpdate lee bloqueando la fila (SELECT FOR UPDATE). Devuelve nil, nil
	// si no existe. Solo tiene sentido sobre un repositorio atado a una transacción.
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Inventory, error)
	// UpdateQuantity persiste cantidad y updatedAt de una fila ya bloqueada.
	UpdateQuantity(ctx context.Context, inventory *entity.Inventory) error
	// AddQuantityUpsert suma delta al registro (productId, storeId), creándolo con
	// minStock si no existe. Protegido por el constraint único: si el insert pierde
	// la carrera contra otra creación concurrente, el conflicto incrementa la fila
	// ganadora.
	AddQuantityUpsert(ctx context.Context, productID, storeID string, delta, minStock int64) error
	// FindLowStock devuelve todos los registros con quantity < minStock, con tienda embebida.
	FindLowStock(ctx context.Context) ([]*entity.Inventory, error)
}
