package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/GregCodi/WarehousePRO/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (total_products, low_stock_items, pending_movements,
// storage_utilization).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// GetLowStock una fila por entrada del ledger de cada producto con stock bajo.
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStockItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *DashboardHandler) GetRecentMovements(c *fiber.Ctx) error {
	items, err := h.uc.RecentMovements(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *DashboardHandler) GetStorageOccupancy(c *fiber.Ctx) error {
	items, err := h.uc.StorageOccupancy(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}
