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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	clock ports.Clock
	ids   ports.IDGenerator
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, clock ports.Clock, ids ports.IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, clock: clock, ids: ids}
}

// Create crea una categoría. Devuelve *domain.DuplicateError si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	now := uc.clock.Now()
	category := &entity.Category{
		ID:          uc.ids.NewID(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(category), nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NewNotFound("categoría", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidation("name", "requerido")
		}
		category.Name = name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(category), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewCategoryResponse(c))
	}
	return items, nil
}

// Delete elimina una categoría; *domain.ConflictError si algún producto la usa.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
