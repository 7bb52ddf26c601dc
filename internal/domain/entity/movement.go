package entity

import "time"

// MovementStatus estado del ciclo de vida de un movimiento.
type MovementStatus string

// Estados de movimiento. completed y cancelled son terminales.
const (
	MovementPending    MovementStatus = "pending"
	MovementInProgress MovementStatus = "in_progress"
	MovementCompleted  MovementStatus = "completed"
	MovementCancelled  MovementStatus = "cancelled"
)

// Valid indica si s es un estado conocido.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementPending, MovementInProgress, MovementCompleted, MovementCancelled:
		return true
	}
	return false
}

// Terminal indica si no se permiten más transiciones desde s.
func (s MovementStatus) Terminal() bool {
	return s == MovementCompleted || s == MovementCancelled
}

// Movement traslado de Quantity unidades de un producto entre áreas.
// Al menos uno de FromAreaID / ToAreaID está definido; un solo lado modela entrada o salida.
type Movement struct {
	ID         string
	ProductID  string
	FromAreaID *string
	ToAreaID   *string
	Quantity   int64
	Status     MovementStatus
	Date       time.Time  // fijada al crear, inmutable
	UserID     string     // actor que lo registró
	AppliedAt  *time.Time // momento en que se aplicó al ledger; nil si aún no
}

// Applied indica si el movimiento ya afectó el ledger.
func (m *Movement) Applied() bool {
	return m.AppliedAt != nil
}

// TouchesArea indica si el movimiento referencia el área como origen o destino.
func (m *Movement) TouchesArea(areaID string) bool {
	return (m.FromAreaID != nil && *m.FromAreaID == areaID) ||
		(m.ToAreaID != nil && *m.ToAreaID == areaID)
}
