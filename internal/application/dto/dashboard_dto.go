package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts      int   `json:"total_products"`
	LowStockItems      int   `json:"low_stock_items"`   // filas de LowStockItems, no productos
	PendingMovements   int   `json:"pending_movements"` // pending + in_progress
	StorageUtilization int64 `json:"storage_utilization"`
}

// LowStockItemDTO una fila por entrada del ledger de un producto con stock bajo.
type LowStockItemDTO struct {
	Product      ProductResponse     `json:"product"`
	Category     *CategoryResponse   `json:"category,omitempty"`
	CurrentStock int64               `json:"current_stock"` // cantidad de esa entrada, no el total
	TotalStock   int64               `json:"total_stock"`
	StorageArea  StorageAreaResponse `json:"storage_area"`
}

// RecentMovementDTO movimiento con nombres para el widget de actividad reciente.
type RecentMovementDTO struct {
	MovementResponse
	ProductName  string `json:"product_name"`
	ProductSKU   string `json:"product_sku"`
	FromAreaName string `json:"from_area_name,omitempty"`
	ToAreaName   string `json:"to_area_name,omitempty"`
	Username     string `json:"username,omitempty"`
}

// StorageOccupancyDTO ocupación de un área (porcentaje con un decimal).
type StorageOccupancyDTO struct {
	StorageAreaID   string          `json:"storage_area_id"`
	StorageAreaName string          `json:"storage_area_name"`
	Stored          int64           `json:"stored"`
	Capacity        int64           `json:"capacity"`
	Percent         decimal.Decimal `json:"percent"`
}
