package entity

import "time"

// Tipos de evento de movimiento.
const (
	MovementEventCreated       = "movement.created"
	MovementEventStatusChanged = "movement.status_changed"
)

// MovementEvent se publica después de confirmar la transacción de un movimiento.
type MovementEvent struct {
	EventID        string         `json:"event_id"`
	Type           string         `json:"type"`
	MovementID     string         `json:"movement_id"`
	ProductID      string         `json:"product_id"`
	FromAreaID     *string        `json:"from_area_id,omitempty"`
	ToAreaID       *string        `json:"to_area_id,omitempty"`
	Quantity       int64          `json:"quantity"`
	Status         MovementStatus `json:"status"`
	PreviousStatus MovementStatus `json:"previous_status,omitempty"`
	Applied        bool           `json:"applied"`
	OccurredAt     time.Time      `json:"occurred_at"`
}
