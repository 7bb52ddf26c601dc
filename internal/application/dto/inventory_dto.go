package dto

import (
	"time"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// SetInventoryRequest body para POST /api/inventory (sobrescritura administrativa).
type SetInventoryRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	StorageAreaID string `json:"storage_area_id" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"min=0"`
}

// AdjustInventoryRequest body para POST /api/inventory/adjust. Delta puede ser negativo.
type AdjustInventoryRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	StorageAreaID string `json:"storage_area_id" validate:"required"`
	Delta         int64  `json:"delta"`
}

// InventoryResponse entrada del ledger.
type InventoryResponse struct {
	ProductID     string    `json:"product_id"`
	StorageAreaID string    `json:"storage_area_id"`
	Quantity      int64     `json:"quantity"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

func NewInventoryResponse(s *entity.Stock) *InventoryResponse {
	if s == nil {
		return nil
	}
	return &InventoryResponse{
		ProductID:     s.ProductID,
		StorageAreaID: s.StorageAreaID,
		Quantity:      s.Quantity,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewInventoryList mapea una lista de entradas.
func NewInventoryList(list []*entity.Stock) []InventoryResponse {
	out := make([]InventoryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *NewInventoryResponse(s))
	}
	return out
}
