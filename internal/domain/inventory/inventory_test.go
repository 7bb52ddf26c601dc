package inventory

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_Permitidas(t *testing.T) {
	cases := []struct{ from, to entity.MovementStatus }{
		{entity.MovementPending, entity.MovementInProgress},
		{entity.MovementPending, entity.MovementCompleted},
		{entity.MovementPending, entity.MovementCancelled},
		{entity.MovementInProgress, entity.MovementCompleted},
		{entity.MovementInProgress, entity.MovementCancelled},
	}
	for _, tc := range cases {
		changed, err := Transition(tc.from, tc.to)
		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.True(t, changed, "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_MismoEstadoEsNoOp(t *testing.T) {
	for _, s := range []entity.MovementStatus{
		entity.MovementPending, entity.MovementInProgress, entity.MovementCompleted, entity.MovementCancelled,
	} {
		changed, err := Transition(s, s)
		require.NoError(t, err)
		assert.False(t, changed, string(s))
	}
}

func TestTransition_TerminalesNoTienenSalida(t *testing.T) {
	cases := []struct{ from, to entity.MovementStatus }{
		{entity.MovementCompleted, entity.MovementCancelled},
		{entity.MovementCompleted, entity.MovementPending},
		{entity.MovementCancelled, entity.MovementCompleted},
		{entity.MovementCancelled, entity.MovementInProgress},
		{entity.MovementInProgress, entity.MovementPending},
	}
	for _, tc := range cases {
		_, err := Transition(tc.from, tc.to)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "%s -> %s", tc.from, tc.to)

		var te *domain.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, string(tc.from), te.From)
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	_, err := Transition(entity.MovementPending, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestDebitCreditAdjust(t *testing.T) {
	assert.Equal(t, int64(26), Debit(50, 24))
	assert.Equal(t, int64(0), Debit(5, 10), "piso en 0")

	credited, err := Credit(0, 24)
	require.NoError(t, err)
	assert.Equal(t, int64(24), credited)

	cases := []struct {
		current, delta, want int64
	}{
		{10, -3, 7},
		{10, -30, 0},
		{10, 5, 15},
		{10, math.MinInt64 + 10, 0},
		{0, math.MaxInt64, math.MaxInt64},
	}
	for _, tc := range cases {
		got, err := Adjust(tc.current, tc.delta)
		require.NoError(t, err, "%d%+d", tc.current, tc.delta)
		assert.Equal(t, tc.want, got, "%d%+d", tc.current, tc.delta)
	}
}

func TestCredit_DesbordamientoRechazado(t *testing.T) {
	_, err := Credit(math.MaxInt64-5, 6)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)

	got, err := Credit(math.MaxInt64-5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}

func TestAdjust_DesbordamientoRechazado(t *testing.T) {
	_, err := Adjust(10, math.MaxInt64)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "delta", ve.Field)
}

func TestTotalStockYStockBajo(t *testing.T) {
	entries := []*entity.Stock{{Quantity: 5}, {Quantity: 15}}
	assert.Equal(t, int64(20), TotalStock(entries))
	assert.Equal(t, int64(0), TotalStock(nil))

	assert.True(t, IsLowStock(20, 20), "el empate cuenta")
	assert.True(t, IsLowStock(5, 20))
	assert.False(t, IsLowStock(26, 20))
}

func TestUtilization(t *testing.T) {
	assert.Equal(t, int64(42), Utilization(2310, 5500))
	assert.Equal(t, int64(0), Utilization(100, 0))
	assert.Equal(t, int64(1), Utilization(10, 1500)) // 0.67 redondea a 1
	assert.Equal(t, int64(50), Utilization(1, 2))
}

func TestOccupancyPercent(t *testing.T) {
	assert.Equal(t, "33.3", OccupancyPercent(1, 3).String())
	assert.True(t, OccupancyPercent(10, 0).IsZero())
}
