package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	s *Store
}

func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	v := *sup
	return r.s.exec(nil, op{
		check: func(s *Store) error { return s.supplierNameFree(v.Name, v.ID) },
		apply: func(s *Store) { s.suppliers[v.ID] = v },
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sup := range r.s.suppliers {
		if sup.Name == name {
			sup := sup
			return &sup, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	v := *sup
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.suppliers[v.ID]; !ok {
				return domain.NewNotFound("proveedor", v.ID)
			}
			return s.supplierNameFree(v.Name, v.ID)
		},
		apply: func(s *Store) { s.suppliers[v.ID] = v },
	})
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sup := sup
		out = append(out, &sup)
	}
	r.s.mu.RUnlock()
	sortByID(out, func(s *entity.Supplier) string { return s.ID })
	return out, nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.suppliers[id]; !ok {
				return domain.NewNotFound("proveedor", id)
			}
			for _, p := range s.products {
				if sameRef(p.SupplierID, id) {
					return domain.NewConflict("proveedor", id, "referenciado por productos")
				}
			}
			return nil
		},
		apply: func(s *Store) { delete(s.suppliers, id) },
	})
}

func (s *Store) supplierNameFree(name, selfID string) error {
	for _, sup := range s.suppliers {
		if sup.Name == name && sup.ID != selfID {
			return domain.NewDuplicate("proveedor", "name", name)
		}
	}
	return nil
}
