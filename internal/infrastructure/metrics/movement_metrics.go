// Package metrics expone contadores Prometheus del motor de movimientos.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

const namespace = "warehouse"

var _ ports.MovementMetrics = (*MovementMetrics)(nil)

// MovementMetrics implementa ports.MovementMetrics sobre prometheus.
type MovementMetrics struct {
	created      *prometheus.CounterVec
	transitioned *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	applied      prometheus.Counter
	units        prometheus.Counter
}

// NewMovementMetrics crea y registra los contadores en reg.
func NewMovementMetrics(reg prometheus.Registerer) (*MovementMetrics, error) {
	m := &MovementMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_created_total",
			Help:      "Movimientos creados por estado inicial.",
		}, []string{"status"}),
		transitioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_transitions_total",
			Help:      "Cambios de estado de movimientos.",
		}, []string{"from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_rejected_total",
			Help:      "Operaciones de movimientos rechazadas por motivo.",
		}, []string{"reason"}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_applications_total",
			Help:      "Movimientos aplicados al ledger.",
		}),
		units: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_units_moved_total",
			Help:      "Unidades movidas por movimientos completados.",
		}),
	}
	for _, c := range []prometheus.Collector{m.created, m.transitioned, m.rejected, m.applied, m.units} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MovementMetrics) MovementCreated(status entity.MovementStatus) {
	m.created.WithLabelValues(string(status)).Inc()
}

func (m *MovementMetrics) MovementTransitioned(from, to entity.MovementStatus) {
	m.transitioned.WithLabelValues(string(from), string(to)).Inc()
}

func (m *MovementMetrics) MovementRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *MovementMetrics) LedgerApplied(units int64) {
	m.applied.Inc()
	m.units.Add(float64(units))
}
