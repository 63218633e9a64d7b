package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
)

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	StoreID  string
}

// Page paginación para listados.
type Page struct {
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetBySKU devuelve nil, nil si no hay producto con ese SKU.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// FindAll lista productos activos según filtro y paginación; devuelve
	// también el total sin paginar.
	FindAll(ctx context.Context, filter ProductFilter, page Page) ([]*entity.Product, int, error)
	// SoftDelete marca el producto como inactivo; sus inventarios no se tocan.
	// Devuelve false si el producto no existe.
	SoftDelete(ctx context.Context, id string) (bool, error)
}
