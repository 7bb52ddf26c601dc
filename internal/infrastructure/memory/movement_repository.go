package memory

import (
	"context"
	"sort"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de MovementRepository.
type MovementRepo struct {
	s *Store
	u *unitOfWork
}

func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func cloneMovement(m entity.Movement) *entity.Movement {
	m.FromAreaID = cloneString(m.FromAreaID)
	m.ToAreaID = cloneString(m.ToAreaID)
	if m.AppliedAt != nil {
		t := *m.AppliedAt
		m.AppliedAt = &t
	}
	return &m
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	v := *cloneMovement(*m)
	err := r.s.exec(r.u, op{
		check: func(s *Store) error {
			if _, ok := s.movements[v.ID]; ok {
				return domain.NewDuplicate("movimiento", "id", v.ID)
			}
			if _, ok := s.products[v.ProductID]; !ok {
				return domain.NewNotFound("producto", v.ProductID)
			}
			for _, areaID := range []*string{v.FromAreaID, v.ToAreaID} {
				if areaID == nil {
					continue
				}
				if _, ok := s.areas[*areaID]; !ok {
					return domain.NewNotFound("área de almacenamiento", *areaID)
				}
			}
			return nil
		},
		apply: func(s *Store) { s.movements[v.ID] = v },
	})
	if err == nil && r.u != nil {
		r.u.movements[v.ID] = v
	}
	return err
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if r.u != nil {
		if m, ok := r.u.movements[id]; ok {
			return cloneMovement(m), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return cloneMovement(m), nil
}

// GetForUpdate dentro de una tx serializa las transiciones del mismo movimiento.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	if r.u != nil {
		r.u.lock("movement:" + id)
	}
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) Update(_ context.Context, m *entity.Movement) error {
	v := *cloneMovement(*m)
	id := v.ID
	err := r.s.exec(r.u, op{
		check: func(s *Store) error {
			_, ok := s.movements[id]
			return notFoundUnless(ok, "movimiento", id)
		},
		apply: func(s *Store) {
			cur := s.movements[id]
			cur.Status = v.Status
			cur.AppliedAt = v.AppliedAt
			s.movements[id] = cur
		},
	})
	if err == nil && r.u != nil {
		r.u.movements[id] = v
	}
	return err
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	statuses := make(map[entity.MovementStatus]struct{}, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses[st] = struct{}{}
	}

	r.s.mu.RLock()
	out := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if len(statuses) > 0 {
			if _, ok := statuses[m.Status]; !ok {
				continue
			}
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.AreaID != "" && !m.TouchesArea(f.AreaID) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*entity.Movement{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MovementRepo) CountByStatus(_ context.Context, statuses ...entity.MovementStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.movements {
		for _, st := range statuses {
			if m.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *MovementRepo) DeleteByProduct(_ context.Context, productID string) (int, error) {
	var n int
	err := r.s.exec(r.u, op{
		check: func(s *Store) error {
			n = 0
			for _, m := range s.movements {
				if m.ProductID == productID {
					n++
				}
			}
			return nil
		},
		apply: func(s *Store) {
			for id, m := range s.movements {
				if m.ProductID == productID {
					delete(s.movements, id)
				}
			}
		},
	})
	if err == nil && r.u != nil {
		for id, m := range r.u.movements {
			if m.ProductID == productID {
				delete(r.u.movements, id)
			}
		}
	}
	return n, err
}
