package entity

import "time"

// MovementType tipo cerrado de movimiento de inventario.
type MovementType string

const (
	MovementTypeIN       MovementType = "IN"       // entrada
	MovementTypeOUT      MovementType = "OUT"      // salida
	MovementTypeTRANSFER MovementType = "TRANSFER" // traslado entre tiendas
)

// Valid reporta si el tipo es uno de los tres valores enumerados.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// InventoryMovement es una entrada del log de auditoría de movimientos.
// Append-only: se crea una sola vez por operación completada y nunca se
// actualiza ni borra; una corrección requiere un movimiento compensatorio.
// SourceStoreID vacío para entradas puras (IN); TargetStoreID vacío para
// salidas puras (OUT).
type InventoryMovement struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	SourceStoreID string       `json:"sourceStoreId,omitempty"`
	TargetStoreID string       `json:"targetStoreId,omitempty"`
	Quantity      int64        `json:"quantity"` // siempre > 0
	Type          MovementType `json:"type"`
	Timestamp     time.Time    `json:"timestamp"`
	CreatedAt     time.Time    `json:"createdAt"`
}
