package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Active es el flag de soft-delete: eliminar un producto lo desactiva,
// sus registros de inventario no se borran.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"` // único
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
