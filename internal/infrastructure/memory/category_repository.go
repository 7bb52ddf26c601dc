package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio sobre el store compartido.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	v := *c
	return r.s.exec(nil, op{
		check: func(s *Store) error { return s.categoryNameFree(v.Name, v.ID) },
		apply: func(s *Store) { s.categories[v.ID] = v },
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	v := *c
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.categories[v.ID]; !ok {
				return domain.NewNotFound("categoría", v.ID)
			}
			return s.categoryNameFree(v.Name, v.ID)
		},
		apply: func(s *Store) { s.categories[v.ID] = v },
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	r.s.mu.RUnlock()
	sortByID(out, func(c *entity.Category) string { return c.ID })
	return out, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.s.exec(nil, op{
		check: func(s *Store) error {
			if _, ok := s.categories[id]; !ok {
				return domain.NewNotFound("categoría", id)
			}
			for _, p := range s.products {
				if sameRef(p.CategoryID, id) {
					return domain.NewConflict("categoría", id, "referenciada por productos")
				}
			}
			return nil
		},
		apply: func(s *Store) { delete(s.categories, id) },
	})
}

func (s *Store) categoryNameFree(name, selfID string) error {
	for _, c := range s.categories {
		if c.Name == name && c.ID != selfID {
			return domain.NewDuplicate("categoría", "name", name)
		}
	}
	return nil
}
