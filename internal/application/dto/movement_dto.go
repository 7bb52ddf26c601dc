package dto

import (
	"time"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements. Status vacío = pending.
type CreateMovementRequest struct {
	ProductID  string  `json:"product_id" validate:"required"`
	FromAreaID *string `json:"from_area_id"`
	ToAreaID   *string `json:"to_area_id"`
	Quantity   int64   `json:"quantity" validate:"min=1"`
	Status     string  `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// UpdateMovementStatusRequest body para PUT /api/movements/:id/status.
type UpdateMovementStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	FromAreaID *string    `json:"from_area_id"`
	ToAreaID   *string    `json:"to_area_id"`
	Quantity   int64      `json:"quantity"`
	Status     string     `json:"status"`
	Date       time.Time  `json:"date"`
	UserID     string     `json:"user_id"`
	AppliedAt  *time.Time `json:"applied_at,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

func NewMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		FromAreaID: m.FromAreaID,
		ToAreaID:   m.ToAreaID,
		Quantity:   m.Quantity,
		Status:     string(m.Status),
		Date:       m.Date,
		UserID:     m.UserID,
		AppliedAt:  m.AppliedAt,
	}
}
