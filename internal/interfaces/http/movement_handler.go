package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

// MovementHandler maneja los movimientos entre áreas.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Estados separados por coma"
// @Param        productId  query  string  false  "Producto"
// @Param        areaId     query  string  false  "Área de origen o destino"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProductID: c.Query("productId"),
		AreaID:    c.Query("areaId"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	for _, s := range strings.Split(c.Query("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			filter.Statuses = append(filter.Statuses, entity.MovementStatus(s))
		}
	}

	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.NewMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if m == nil {
		return notFound(c, "movimiento")
	}
	return c.JSON(dto.NewMovementResponse(m))
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Con stock insuficiente responde 409 INSUFFICIENT_STOCK con la cantidad disponible.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, from_area_id, to_area_id, quantity, status"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.CreateMovement(c.UserContext(), inventory.CreateMovementInput{
		ProductID:  in.ProductID,
		FromAreaID: in.FromAreaID,
		ToAreaID:   in.ToAreaID,
		Quantity:   in.Quantity,
		Status:     entity.MovementStatus(in.Status),
		UserID:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(m))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un movimiento
// @Description  Pasar a completed aplica el ledger una sola vez; completed y cancelled son terminales.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementStatusRequest  true  "status"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/status [put]
func (h *MovementHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateMovementStatusRequest
	if err := decodeUpdate(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	m, err := h.uc.SetMovementStatus(c.UserContext(), c.Params("id"), entity.MovementStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMovementResponse(m))
}
