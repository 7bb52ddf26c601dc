package repository

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID / GetByName devuelven (nil, nil) si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete devuelve ErrNotFound si no existe y ErrConflict si algún producto la referencia.
	Delete(ctx context.Context, id string) error
}
