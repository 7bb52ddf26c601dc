package dto

import (
	"time"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// CreateStorageAreaRequest entrada para crear un área de almacenamiento.
type CreateStorageAreaRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	Capacity    int64  `json:"capacity" validate:"min=0"`
}

// UpdateStorageAreaRequest campos opcionales; nil = sin cambio.
type UpdateStorageAreaRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Capacity    *int64  `json:"capacity" validate:"omitempty,min=0"`
}

// StorageAreaResponse salida de un área.
type StorageAreaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int64     `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewStorageAreaResponse(a *entity.StorageArea) *StorageAreaResponse {
	if a == nil {
		return nil
	}
	return &StorageAreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Capacity:    a.Capacity,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
