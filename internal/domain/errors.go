package domain

import (
	"fmt"
	"net/http"
)

// Error es el error de dominio de la aplicación: código máquina, mensaje,
// status HTTP equivalente y detalles estructurados para diagnóstico.
// La capa HTTP lo serializa tal cual; cualquier otro error colapsa a 500.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

// Error implementa la interfaz error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errores de transferencia e inventario.

// NewSameStoreTransfer transferencia con tienda origen igual a destino.
func NewSameStoreTransfer(storeID string) *Error {
	return &Error{
		Code:    "invalid_transfer",
		Message: "No se puede transferir inventario a la misma tienda",
		Status:  http.StatusBadRequest,
		Details: map[string]any{"storeId": storeID},
	}
}

// NewInvalidQuantity cantidad cero o negativa.
func NewInvalidQuantity(quantity int64) *Error {
	return &Error{
		Code:    "invalid_quantity",
		Message: "La cantidad debe ser un número positivo",
		Status:  http.StatusBadRequest,
		Details: map[string]any{"quantity": quantity},
	}
}

// NewInsufficientInventory la tienda origen no cubre la cantidad solicitada.
// Lleva requested/available para diagnóstico.
func NewInsufficientInventory(requested, available int64) *Error {
	return &Error{
		Code:    "insufficient_inventory",
		Message: "La tienda origen no tiene suficiente inventario para realizar la transferencia",
		Status:  http.StatusBadRequest,
		Details: map[string]any{"requested": requested, "available": available},
	}
}

// NewInventoryNotFound no existe registro de stock para (producto, tienda).
func NewInventoryNotFound(productID, storeID string) *Error {
	details := map[string]any{}
	if productID != "" {
		details["productId"] = productID
	}
	if storeID != "" {
		details["storeId"] = storeID
	}
	return &Error{
		Code:    "inventory_not_found",
		Message: "El inventario solicitado no existe",
		Status:  http.StatusNotFound,
		Details: details,
	}
}

// NewNoLowStockInventories el escaneo de stock bajo no encontró registros.
// "Nada que reportar" es una condición reportable, no un éxito vacío.
func NewNoLowStockInventories() *Error {
	return &Error{
		Code:    "no_low_stock_inventories",
		Message: "No se encontraron inventarios con stock bajo",
		Status:  http.StatusNotFound,
	}
}

// NewNoInventoriesForStore la tienda existe pero no tiene registros de stock.
func NewNoInventoriesForStore(storeID string) *Error {
	return &Error{
		Code:    "no_inventories_for_store",
		Message: "No se encontraron inventarios para la tienda especificada",
		Status:  http.StatusNotFound,
		Details: map[string]any{"storeId": storeID},
	}
}

// NewInvalidMovementType tipo de movimiento fuera de {IN, OUT, TRANSFER}.
// Chequeo defensivo en el borde de almacenamiento: los movimientos son registro
// de auditoría permanente y se revalidan con independencia del caller.
func NewInvalidMovementType(movementType string) *Error {
	return &Error{
		Code:    "invalid_movement_type",
		Message: "Tipo de movimiento inválido",
		Status:  http.StatusBadRequest,
		Details: map[string]any{"type": movementType},
	}
}

// Errores de tiendas.

// NewStoreNotFound la tienda no existe.
func NewStoreNotFound(storeID string) *Error {
	return &Error{
		Code:    "store_not_found",
		Message: "La tienda especificada no existe",
		Status:  http.StatusNotFound,
		Details: map[string]any{"storeId": storeID},
	}
}

// NewSourceOrTargetStoreNotFound el chequeo batch de existencia falló; no se
// distingue cuál de las dos falta, se reportan ambas.
func NewSourceOrTargetStoreNotFound(sourceStoreID, targetStoreID string) *Error {
	return &Error{
		Code:    "source_or_target_store_not_found",
		Message: "La tienda de origen o destino especificada no existe",
		Status:  http.StatusNotFound,
		Details: map[string]any{"sourceStoreId": sourceStoreID, "targetStoreId": targetStoreID},
	}
}

// NewDuplicateStore ya existe una tienda con el mismo nombre.
func NewDuplicateStore(name string) *Error {
	return &Error{
		Code:    "duplicate_store",
		Message: "Ya existe una tienda con este nombre",
		Status:  http.StatusConflict,
		Details: map[string]any{"name": name},
	}
}

// Errores de productos.

// NewProductNotFound el producto no existe.
func NewProductNotFound(productID string) *Error {
	return &Error{
		Code:    "product_not_found",
		Message: "El producto especificado no existe",
		Status:  http.StatusNotFound,
		Details: map[string]any{"productId": productID},
	}
}

// NewDuplicateProduct ya existe un producto con el mismo SKU.
func NewDuplicateProduct(sku string) *Error {
	return &Error{
		Code:    "duplicate_product",
		Message: "Ya existe un producto con este SKU",
		Status:  http.StatusConflict,
		Details: map[string]any{"sku": sku},
	}
}

// NewInactiveProduct intento de actualizar un producto desactivado.
func NewInactiveProduct(productID string) *Error {
	return &Error{
		Code:    "inactive_product",
		Message: "No se puede actualizar un producto inactivo",
		Status:  http.StatusBadRequest,
		Details: map[string]any{"productId": productID},
	}
}

// NewValidation error genérico de datos de entrada inválidos.
func NewValidation(message string, details map[string]any) *Error {
	return &Error{
		Code:    "validation_error",
		Message: message,
		Status:  http.StatusBadRequest,
		Details: details,
	}
}
