package dto

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ProductID string `json:"productId"`
	StoreID   string `json:"storeId"`
	Quantity  int64  `json:"quantity"`
	MinStock  int64  `json:"minStock"`
}

// TransferRequest body para POST /api/inventory/transfer.
// MinStock es opcional: umbral del registro destino si hay que crearlo (0 por defecto).
type TransferRequest struct {
	ProductID     string `json:"productId"`
	SourceStoreID string `json:"sourceStoreId"`
	TargetStoreID string `json:"targetStoreId"`
	Quantity      int64  `json:"quantity"`
	MinStock      *int64 `json:"minStock,omitempty"`
}
