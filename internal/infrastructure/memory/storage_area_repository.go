package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.StorageAreaRepository = (*StorageAreaRepo)(nil)

// StorageAreaRepo implementación en memoria de StorageAreaRepository.
type StorageAreaRepo struct {
	s *Store
}

func NewStorageAreaRepository(s *Store) *StorageAreaRepo {
	return &StorageAreaRepo{s: s}
}

func (r *StorageAreaRepo) Create(_ context.Context, a *entity.StorageArea) error {
	v := *a
	return r.s.exec(nil, op{
		check: func(s *Store) error { return s.areaNameFree(v.Name, v.ID) },
		apply: func(s *Store) { s.areas[v.ID] = v },
	})
}

func (r *StorageAreaRepo) GetByID(_ context.Context, id string) (*entity.StorageArea, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.areas[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *StorageAreaRepo) GetByName(_ context.Context, name string) (*entity.StorageArea, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.areas {
		if a.Name == name {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (r *StorageAreaRepo) Update(_ context.Context, a *entity.StorageArea) error {
	v := *a
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.areas[v.ID]; !ok {
				return domain.NewNotFound("área de almacenamiento", v.ID)
			}
			return s.areaNameFree(v.Name, v.ID)
		},
		apply: func(s *Store) { s.areas[v.ID] = v },
	})
}

func (r *StorageAreaRepo) List(_ context.Context) ([]*entity.StorageArea, error) {
	r.s.mu.RLock()
	out := make([]*entity.StorageArea, 0, len(r.s.areas))
	for _, a := range r.s.areas {
		a := a
		out = append(out, &a)
	}
	r.s.mu.RUnlock()
	sortByID(out, func(a *entity.StorageArea) string { return a.ID })
	return out, nil
}

// Delete bloqueado si el área tiene entradas en el ledger (aunque sean 0) o movimientos.
func (r *StorageAreaRepo) Delete(_ context.Context, id string) error {
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.areas[id]; !ok {
				return domain.NewNotFound("área de almacenamiento", id)
			}
			for k := range s.stock {
				if k.StorageAreaID == id {
					return domain.NewConflict("área de almacenamiento", id, "tiene inventario registrado")
				}
			}
			for _, m := range s.movements {
				if m.TouchesArea(id) {
					return domain.NewConflict("área de almacenamiento", id, "referenciada por movimientos")
				}
			}
			return nil
		},
		apply: func(s *Store) { delete(s.areas, id) },
	})
}

func (s *Store) areaNameFree(name, selfID string) error {
	for _, a := range s.areas {
		if a.Name == name && a.ID != selfID {
			return domain.NewDuplicate("área de almacenamiento", "name", name)
		}
	}
	return nil
}
