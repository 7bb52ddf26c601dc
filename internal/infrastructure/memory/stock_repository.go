package memory

import (
	"context"
	"sort"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger en memoria. Dentro de una tx las lecturas ven primero las escrituras pendientes.
type StockRepo struct {
	s *Store
	u *unitOfWork
}

func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Get(_ context.Context, productID, areaID string) (*entity.Stock, error) {
	key := entity.StockKey{ProductID: productID, StorageAreaID: areaID}
	if r.u != nil {
		if st, ok := r.u.stock[key]; ok {
			return &st, nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stock[key]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID, areaID string) (*entity.Stock, error) {
	if r.u != nil {
		r.u.lock("stock:" + entity.StockKey{ProductID: productID, StorageAreaID: areaID}.String())
	}
	return r.Get(ctx, productID, areaID)
}

func (r *StockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	v := *st
	if v.Quantity < 0 {
		return domain.NewValidation("quantity", "debe ser mayor o igual a 0")
	}
	err := r.s.exec(r.u, op{
		check: func(s *Store) error {
			if _, ok := s.products[v.ProductID]; !ok {
				return domain.NewNotFound("producto", v.ProductID)
			}
			if _, ok := s.areas[v.StorageAreaID]; !ok {
				return domain.NewNotFound("área de almacenamiento", v.StorageAreaID)
			}
			return nil
		},
		apply: func(s *Store) { s.stock[v.Key()] = v },
	})
	if err == nil && r.u != nil {
		r.u.stock[v.Key()] = v
	}
	return err
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	return r.list(func(st entity.Stock) bool { return st.ProductID == productID }), nil
}

func (r *StockRepo) ListByArea(_ context.Context, areaID string) ([]*entity.Stock, error) {
	return r.list(func(st entity.Stock) bool { return st.StorageAreaID == areaID }), nil
}

func (r *StockRepo) ListAll(_ context.Context) ([]*entity.Stock, error) {
	return r.list(func(entity.Stock) bool { return true }), nil
}

func (r *StockRepo) DeleteByProduct(_ context.Context, productID string) (int, error) {
	var n int
	err := r.s.exec(r.u, op{
		check: func(s *Store) error {
			n = 0
			for k := range s.stock {
				if k.ProductID == productID {
					n++
				}
			}
			return nil
		},
		apply: func(s *Store) {
			for k := range s.stock {
				if k.ProductID == productID {
					delete(s.stock, k)
				}
			}
		},
	})
	if err == nil && r.u != nil {
		for k := range r.u.stock {
			if k.ProductID == productID {
				delete(r.u.stock, k)
			}
		}
	}
	return n, err
}

// list copia las entradas que cumplen keep, ordenadas por (producto, área).
func (r *StockRepo) list(keep func(entity.Stock) bool) []*entity.Stock {
	r.s.mu.RLock()
	out := make([]*entity.Stock, 0)
	for _, st := range r.s.stock {
		if keep(st) {
			st := st
			out = append(out, &st)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].StorageAreaID < out[j].StorageAreaID
	})
	return out
}
