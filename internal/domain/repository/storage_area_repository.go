package repository

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// StorageAreaRepository define el puerto de persistencia para StorageArea (DIP).
type StorageAreaRepository interface {
	Create(ctx context.Context, area *entity.StorageArea) error
	GetByID(ctx context.Context, id string) (*entity.StorageArea, error)
	GetByName(ctx context.Context, name string) (*entity.StorageArea, error)
	Update(ctx context.Context, area *entity.StorageArea) error
	List(ctx context.Context) ([]*entity.StorageArea, error)
	// Delete devuelve ErrConflict si el área tiene entradas en el ledger o movimientos que la referencian.
	Delete(ctx context.Context, id string) error
}
