package entity

import "time"

// Inventory representa el stock de un producto en una tienda.
// Invariantes: Quantity >= 0 siempre; (ProductID, StoreID) único.
// Las mutaciones cruzadas entre tiendas pasan solo por el motor de transferencias.
type Inventory struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	StoreID   string    `json:"storeId"`
	Quantity  int64     `json:"quantity"`
	MinStock  int64     `json:"minStock"` // umbral de reorden
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Store     *Store    `json:"store,omitempty"`
}

// IsLowStock indica si el registro está por debajo de su umbral de reorden.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity < i.MinStock
}
