package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var movementColumns = []string{
	"id", "product_id", "from_area_id", "to_area_id", "quantity", "status", "date", "user_id", "applied_at",
}

// movementRow fila de movements; user_id es NULL si el usuario fue borrado.
type movementRow struct {
	ID         string     `db:"id"`
	ProductID  string     `db:"product_id"`
	FromAreaID *string    `db:"from_area_id"`
	ToAreaID   *string    `db:"to_area_id"`
	Quantity   int64      `db:"quantity"`
	Status     string     `db:"status"`
	Date       time.Time  `db:"date"`
	UserID     *string    `db:"user_id"`
	AppliedAt  *time.Time `db:"applied_at"`
}

func (row *movementRow) toEntity() *entity.Movement {
	m := &entity.Movement{
		ID:         row.ID,
		ProductID:  row.ProductID,
		FromAreaID: row.FromAreaID,
		ToAreaID:   row.ToAreaID,
		Quantity:   row.Quantity,
		Status:     entity.MovementStatus(row.Status),
		Date:       utc(row.Date),
		UserID:     deref(row.UserID),
	}
	if row.AppliedAt != nil {
		t := utc(*row.AppliedAt)
		m.AppliedAt = &t
	}
	return m
}

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	sql, args, err := psql.Insert("movements").
		Columns(movementColumns...).
		Values(m.ID, m.ProductID, m.FromAreaID, m.ToAreaID, m.Quantity, string(m.Status), m.Date, nullable(m.UserID), m.AppliedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.NewDuplicate("movimiento", "id", m.ID)
		case isForeignKeyViolation(err):
			return movementRefError(err, m)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func movementRefError(err error, m *entity.Movement) error {
	switch pgConstraint(err) {
	case "movements_from_area_fk":
		return domain.NewNotFound("área de almacenamiento", deref(m.FromAreaID))
	case "movements_to_area_fk":
		return domain.NewNotFound("área de almacenamiento", deref(m.ToAreaID))
	case "movements_user_fk":
		return domain.NewNotFound("usuario", m.UserID)
	}
	return domain.NewNotFound("producto", m.ProductID)
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, psql.Select(movementColumns...).From("movements").Where(squirrel.Eq{"id": id}))
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.getOne(ctx, psql.Select(movementColumns...).From("movements").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

func (r *MovementRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.Movement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get movement: %w", err)
	}
	var row movementRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return row.toEntity(), nil
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	tag, err := r.q.Exec(ctx, `UPDATE movements SET status = $2, applied_at = $3 WHERE id = $1`,
		m.ID, string(m.Status), m.AppliedAt)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("movimiento", m.ID)
	}
	return nil
}

// movementListQuery arma el SELECT filtrado, ordenado por fecha descendente.
func movementListQuery(f repository.MovementFilter) squirrel.SelectBuilder {
	q := psql.Select(movementColumns...).From("movements")
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		q = q.Where(squirrel.Eq{"status": statuses})
	}
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.AreaID != "" {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"from_area_id": f.AreaID},
			squirrel.Eq{"to_area_id": f.AreaID},
		})
	}
	q = q.OrderBy("date DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	sql, args, err := movementListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movements: %w", err)
	}
	var rows []*movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.Movement, len(rows))
	for i, row := range rows {
		out[i] = row.toEntity()
	}
	return out, nil
}

func (r *MovementRepo) CountByStatus(ctx context.Context, statuses ...entity.MovementStatus) (int, error) {
	values := make([]string, len(statuses))
	for i, st := range statuses {
		values[i] = string(st)
	}
	sql, args, err := psql.Select("COUNT(*)").From("movements").Where(squirrel.Eq{"status": values}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count movements: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
