package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository (usable con o sin tx).
type ProductRepo struct {
	s *Store
	u *unitOfWork
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func cloneProduct(p entity.Product) *entity.Product {
	p.CategoryID = cloneString(p.CategoryID)
	p.SupplierID = cloneString(p.SupplierID)
	return &p
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	v := *cloneProduct(*p)
	return r.s.exec(r.u, op{
		check: func(s *Store) error {
			if err := s.skuFree(v.SKU, v.ID); err != nil {
				return err
			}
			return s.productRefsExist(&v)
		},
		apply: func(s *Store) { s.products[v.ID] = v },
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate dentro de una tx bloquea el producto hasta el Commit/Rollback.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if r.u != nil {
		r.u.lock("product:" + id)
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	v := *cloneProduct(*p)
	return r.s.exec(r.u, op{
		check: func(s *Store) error {
			if _, ok := s.products[v.ID]; !ok {
				return domain.NewNotFound("producto", v.ID)
			}
			if err := s.skuFree(v.SKU, v.ID); err != nil {
				return err
			}
			return s.productRefsExist(&v)
		},
		apply: func(s *Store) { s.products[v.ID] = v },
	})
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, cloneProduct(p))
	}
	r.s.mu.RUnlock()
	sortByID(out, func(p *entity.Product) string { return p.ID })
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.s.exec(r.u, op{
		check: func(s *Store) error {
			_, ok := s.products[id]
			return notFoundUnless(ok, "producto", id)
		},
		apply: func(s *Store) { delete(s.products, id) },
	})
}

func (s *Store) skuFree(sku, selfID string) error {
	for _, p := range s.products {
		if p.SKU == sku && p.ID != selfID {
			return domain.NewDuplicate("producto", "sku", sku)
		}
	}
	return nil
}

func (s *Store) productRefsExist(p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return domain.NewNotFound("categoría", *p.CategoryID)
		}
	}
	if p.SupplierID != nil {
		if _, ok := s.suppliers[*p.SupplierID]; !ok {
			return domain.NewNotFound("proveedor", *p.SupplierID)
		}
	}
	return nil
}
