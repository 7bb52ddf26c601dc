package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.StorageAreaRepository = (*StorageAreaRepo)(nil)

const storageAreaColumns = `id, name, description, capacity, created_at, updated_at`

// StorageAreaRepo implementación de StorageAreaRepository sobre PostgreSQL.
type StorageAreaRepo struct {
	q Querier
}

func NewStorageAreaRepository(q Querier) *StorageAreaRepo {
	return &StorageAreaRepo{q: q}
}

func (r *StorageAreaRepo) Create(ctx context.Context, a *entity.StorageArea) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO storage_areas (id, name, description, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Description, a.Capacity, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate("área de almacenamiento", "name", a.Name)
		}
		return fmt.Errorf("insert storage area: %w", err)
	}
	return nil
}

func (r *StorageAreaRepo) GetByID(ctx context.Context, id string) (*entity.StorageArea, error) {
	return r.getOne(ctx, `SELECT `+storageAreaColumns+` FROM storage_areas WHERE id = $1`, id)
}

func (r *StorageAreaRepo) GetByName(ctx context.Context, name string) (*entity.StorageArea, error) {
	return r.getOne(ctx, `SELECT `+storageAreaColumns+` FROM storage_areas WHERE name = $1`, name)
}

func (r *StorageAreaRepo) getOne(ctx context.Context, query string, arg any) (*entity.StorageArea, error) {
	var a entity.StorageArea
	if err := pgxscan.Get(ctx, r.q, &a, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage area: %w", err)
	}
	return &a, nil
}

func (r *StorageAreaRepo) Update(ctx context.Context, a *entity.StorageArea) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE storage_areas SET name = $2, description = $3, capacity = $4, updated_at = $5
		WHERE id = $1`,
		a.ID, a.Name, a.Description, a.Capacity, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicate("área de almacenamiento", "name", a.Name)
		}
		return fmt.Errorf("update storage area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("área de almacenamiento", a.ID)
	}
	return nil
}

func (r *StorageAreaRepo) List(ctx context.Context) ([]*entity.StorageArea, error) {
	var list []*entity.StorageArea
	if err := pgxscan.Select(ctx, r.q, &list, `SELECT `+storageAreaColumns+` FROM storage_areas ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list storage areas: %w", err)
	}
	return list, nil
}

// Delete las FK de inventory y movements (ON DELETE RESTRICT) bloquean el borrado.
func (r *StorageAreaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM storage_areas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflict("área de almacenamiento", id, "tiene inventario o movimientos")
		}
		return fmt.Errorf("delete storage area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("área de almacenamiento", id)
	}
	return nil
}
