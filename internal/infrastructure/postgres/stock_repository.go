package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `product_id, storage_area_id, quantity, updated_at`

// StockRepo ledger (producto, área) -> cantidad sobre la tabla inventory.
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Get(ctx context.Context, productID, areaID string) (*entity.Stock, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM inventory WHERE product_id = $1 AND storage_area_id = $2`,
		productID, areaID)
}

// GetForUpdate toma primero un advisory lock de la clave: FOR UPDATE no bloquea filas que aún
// no existen y dos transacciones podrían crear la misma entrada a la vez.
// Solo tiene efecto dentro de una transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, areaID string) (*entity.Stock, error) {
	key := entity.StockKey{ProductID: productID, StorageAreaID: areaID}
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.String()); err != nil {
		return nil, fmt.Errorf("lock stock %s: %w", key, err)
	}
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM inventory WHERE product_id = $1 AND storage_area_id = $2 FOR UPDATE`,
		productID, areaID)
}

func (r *StockRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Stock, error) {
	var st entity.Stock
	if err := pgxscan.Get(ctx, r.q, &st, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &st, nil
}

func (r *StockRepo) Upsert(ctx context.Context, st *entity.Stock) error {
	if st.Quantity < 0 {
		return domain.NewValidation("quantity", "debe ser mayor o igual a 0")
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (product_id, storage_area_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, storage_area_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		st.ProductID, st.StorageAreaID, st.Quantity, st.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			if pgConstraint(err) == "inventory_area_fk" {
				return domain.NewNotFound("área de almacenamiento", st.StorageAreaID)
			}
			return domain.NewNotFound("producto", st.ProductID)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM inventory WHERE product_id = $1 ORDER BY product_id, storage_area_id`, productID)
}

func (r *StockRepo) ListByArea(ctx context.Context, areaID string) ([]*entity.Stock, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM inventory WHERE storage_area_id = $1 ORDER BY product_id, storage_area_id`, areaID)
}

func (r *StockRepo) ListAll(ctx context.Context) ([]*entity.Stock, error) {
	return r.list(ctx, `SELECT `+stockColumns+` FROM inventory ORDER BY product_id, storage_area_id`)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Stock, error) {
	list := make([]*entity.Stock, 0)
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return list, nil
}

func (r *StockRepo) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
