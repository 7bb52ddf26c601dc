package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
)

// InventoryHandler lectura y corrección administrativa del ledger.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Get godoc
// @Summary      Cantidad de un producto en un área
// @Description  Una entrada inexistente se devuelve con quantity 0.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        areaId     path  string  true  "ID del área"
// @Success      200  {object}  dto.InventoryResponse
// @Router       /api/inventory/{productId}/{areaId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	productID, areaID := c.Params("productId"), c.Params("areaId")
	qty, err := h.ledger.GetInventory(c.UserContext(), productID, areaID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryResponse{ProductID: productID, StorageAreaID: areaID, Quantity: qty})
}

func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	list, err := h.ledger.ListByProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryList(list))
}

func (h *InventoryHandler) ListByArea(c *fiber.Ctx) error {
	list, err := h.ledger.ListByArea(c.UserContext(), c.Params("areaId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryList(list))
}

// Set godoc
// @Summary      Fijar cantidad (corrección administrativa)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetInventoryRequest  true  "product_id, storage_area_id, quantity"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Set(c *fiber.Ctx) error {
	var in dto.SetInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	st, err := h.ledger.SetInventory(c.UserContext(), in.ProductID, in.StorageAreaID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInventoryResponse(st))
}

// Adjust suma delta (puede ser negativo) con piso en 0.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	st, err := h.ledger.AdjustInventory(c.UserContext(), in.ProductID, in.StorageAreaID, in.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryResponse(st))
}
