package usecase

import (
	"context"
	"strings"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

// StorageAreaUseCase casos de uso CRUD para áreas de almacenamiento.
// La capacidad solo se usa para calcular ocupación; no limita los movimientos.
type StorageAreaUseCase struct {
	repo  repository.StorageAreaRepository
	clock ports.Clock
	ids   ports.IDGenerator
}

// NewStorageAreaUseCase construye el caso de uso.
func NewStorageAreaUseCase(repo repository.StorageAreaRepository, clock ports.Clock, ids ports.IDGenerator) *StorageAreaUseCase {
	return &StorageAreaUseCase{repo: repo, clock: clock, ids: ids}
}

// Create crea un área nueva.
func (uc *StorageAreaUseCase) Create(ctx context.Context, in dto.CreateStorageAreaRequest) (*dto.StorageAreaResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	if in.Capacity < 0 {
		return nil, domain.NewValidation("capacity", "debe ser mayor o igual a 0")
	}
	now := uc.clock.Now()
	area := &entity.StorageArea{
		ID:          uc.ids.NewID(),
		Name:        name,
		Description: in.Description,
		Capacity:    in.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, area); err != nil {
		return nil, err
	}
	return dto.NewStorageAreaResponse(area), nil
}

// GetByID obtiene un área por ID; (nil, nil) si no existe.
func (uc *StorageAreaUseCase) GetByID(ctx context.Context, id string) (*dto.StorageAreaResponse, error) {
	area, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStorageAreaResponse(area), nil
}

// Update actualiza un área.
func (uc *StorageAreaUseCase) Update(ctx context.Context, id string, in dto.UpdateStorageAreaRequest) (*dto.StorageAreaResponse, error) {
	area, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.NewNotFound("área de almacenamiento", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidation("name", "requerido")
		}
		area.Name = name
	}
	if in.Description != nil {
		area.Description = *in.Description
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, domain.NewValidation("capacity", "debe ser mayor o igual a 0")
		}
		area.Capacity = *in.Capacity
	}
	area.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, area); err != nil {
		return nil, err
	}
	return dto.NewStorageAreaResponse(area), nil
}

// List lista todas las áreas.
func (uc *StorageAreaUseCase) List(ctx context.Context) ([]dto.StorageAreaResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StorageAreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *dto.NewStorageAreaResponse(a))
	}
	return items, nil
}

// Delete elimina un área sin inventario ni movimientos; si no, *domain.ConflictError.
func (uc *StorageAreaUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
