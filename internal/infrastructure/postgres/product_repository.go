package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category_id, supplier_id, min_stock_level, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, sku, name, description, category_id, supplier_id, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.SKU, p.Name, p.Description, p.CategoryID, p.SupplierID, p.MinStockLevel, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError(err, p)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET sku = $2, name = $3, description = $4, category_id = $5, supplier_id = $6,
		    min_stock_level = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.SKU, p.Name, p.Description, p.CategoryID, p.SupplierID, p.MinStockLevel, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError(err, p)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("producto", p.ID)
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	if err := pgxscan.Select(ctx, r.q, &list, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewConflict("producto", id, "tiene inventario o movimientos")
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("producto", id)
	}
	return nil
}

// productWriteError traduce 23505 (sku) y 23503 (categoría o proveedor inexistente).
func productWriteError(err error, p *entity.Product) error {
	switch {
	case isUniqueViolation(err):
		return domain.NewDuplicate("producto", "sku", p.SKU)
	case isForeignKeyViolation(err):
		if pgConstraint(err) == "products_supplier_fk" {
			return domain.NewNotFound("proveedor", deref(p.SupplierID))
		}
		return domain.NewNotFound("categoría", deref(p.CategoryID))
	}
	return fmt.Errorf("write product: %w", err)
}
