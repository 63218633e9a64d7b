package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventory-stores/internal/domain/entity"
)

// CreateProductInventory stock inicial del producto al crearlo.
type CreateProductInventory struct {
	StoreID  string `json:"storeId"`
	Quantity int64  `json:"quantity"`
	MinStock int64  `json:"minStock"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Price       decimal.Decimal        `json:"price"`
	SKU         string                 `json:"sku"`
	Inventory   CreateProductInventory `json:"inventory"`
}

// UpdateProductRequest body para PUT /api/products/:id (actualización parcial).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SKU         *string          `json:"sku,omitempty"`
}

// ProductInventoryDTO fila de stock por tienda en el listado con inventario.
type ProductInventoryDTO struct {
	ID         string `json:"id"`
	StoreID    string `json:"storeId"`
	Quantity   int64  `json:"quantity"`
	MinStock   int64  `json:"minStock"`
	IsLowStock bool   `json:"isLowStock"`
}

// ProductResponse producto con inventario opcional agregado.
type ProductResponse struct {
	entity.Product
	Inventories []ProductInventoryDTO `json:"inventories,omitempty"`
	TotalStock  *int64                `json:"totalStock,omitempty"`
}

// ProductListResponse resultado paginado de productos.
type ProductListResponse struct {
	Rows  []ProductResponse `json:"rows"`
	Count int               `json:"count"`
}
