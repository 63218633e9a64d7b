package dto

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}
