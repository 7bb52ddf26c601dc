package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/usecase"
)

// StorageAreaHandler CRUD de áreas de almacenamiento.
type StorageAreaHandler struct {
	uc *usecase.StorageAreaUseCase
}

func NewStorageAreaHandler(uc *usecase.StorageAreaUseCase) *StorageAreaHandler {
	return &StorageAreaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear área de almacenamiento
// @Tags         storage-areas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageAreaRequest  true  "name, description, capacity"
// @Success      201   {object}  dto.StorageAreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storage-areas [post]
func (h *StorageAreaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *StorageAreaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "área de almacenamiento")
	}
	return c.JSON(out)
}

func (h *StorageAreaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StorageAreaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageAreaRequest
	if err := decodeUpdate(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete 409 CONFLICT si el área tiene inventario o movimientos.
func (h *StorageAreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
