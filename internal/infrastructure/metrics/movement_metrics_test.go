package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

func TestMovementMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMovementMetrics(reg)
	require.NoError(t, err)

	m.MovementCreated(entity.MovementPending)
	m.MovementCreated(entity.MovementPending)
	m.MovementTransitioned(entity.MovementPending, entity.MovementCompleted)
	m.MovementRejected("insufficient_stock")
	m.LedgerApplied(24)
	m.LedgerApplied(6)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitioned.WithLabelValues("pending", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.applied))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.units))
}

func TestNewMovementMetrics_RegistroDuplicado(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMovementMetrics(reg)
	require.NoError(t, err)

	_, err = NewMovementMetrics(reg)
	assert.Error(t, err, "registrar dos veces los mismos contadores debe fallar")
}
