package repository

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos (orden: fecha descendente).
type MovementFilter struct {
	Statuses  []entity.MovementStatus
	ProductID string
	AreaID    string // origen o destino
	Limit     int    // 0 = sin límite
	Offset    int
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea el movimiento para que una transición se aplique una sola vez.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	// Update persiste Status y AppliedAt; el resto de campos es inmutable.
	Update(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	CountByStatus(ctx context.Context, statuses ...entity.MovementStatus) (int, error)
	DeleteByProduct(ctx context.Context, productID string) (int, error)
}
