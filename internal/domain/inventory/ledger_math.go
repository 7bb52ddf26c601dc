package inventory

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Debit resta qty con piso en 0. El piso nunca debería activarse si la precondición
// de stock se validó bajo el bloqueo de la clave.
func Debit(current, qty int64) int64 {
	if current-qty < 0 {
		return 0
	}
	return current - qty
}

// Credit suma qty al destino (0 si la entrada no existía). Un resultado que no cabe en
// int64 es ValidationError, nunca un valor truncado.
func Credit(current, qty int64) (int64, error) {
	if overflows(current, qty) {
		return 0, domain.NewValidation("quantity", "desbordamiento del stock del destino")
	}
	return current + qty, nil
}

// Adjust aplica delta con piso en 0. Igual que Credit, rechaza el desbordamiento.
func Adjust(current, delta int64) (int64, error) {
	if overflows(current, delta) {
		return 0, domain.NewValidation("delta", "desbordamiento")
	}
	if current+delta < 0 {
		return 0, nil
	}
	return current + delta, nil
}

func overflows(current, delta int64) bool {
	return delta > 0 && current > math.MaxInt64-delta
}

// TotalStock suma las cantidades de las entradas (0 si no hay).
func TotalStock(entries []*entity.Stock) int64 {
	var total int64
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// IsLowStock total <= mínimo; el empate cuenta como stock bajo.
func IsLowStock(total, minStockLevel int64) bool {
	return total <= minStockLevel
}

// Utilization porcentaje entero round(100 * stored / capacity); 0 si capacity es 0.
func Utilization(stored, capacity int64) int64 {
	if capacity <= 0 {
		return 0
	}
	return decimal.NewFromInt(stored).Mul(hundred).
		Div(decimal.NewFromInt(capacity)).
		Round(0).
		IntPart()
}

// OccupancyPercent porcentaje por área con un decimal; cero si el área no declara capacidad.
func OccupancyPercent(stored, capacity int64) decimal.Decimal {
	if capacity <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(stored).Mul(hundred).
		Div(decimal.NewFromInt(capacity)).
		Round(1)
}
