package ports

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// MovementEventPublisher puerto de salida para notificar cambios de movimientos
// (Kafka en producción). Se invoca después del commit; un fallo no revierte la operación.
type MovementEventPublisher interface {
	Publish(ctx context.Context, event entity.MovementEvent) error
}

// MovementMetrics puerto de observabilidad del motor de movimientos.
type MovementMetrics interface {
	MovementCreated(status entity.MovementStatus)
	MovementTransitioned(from, to entity.MovementStatus)
	// MovementRejected reason: insufficient_stock, invalid_transition, validation, not_found.
	MovementRejected(reason string)
	LedgerApplied(units int64)
}
