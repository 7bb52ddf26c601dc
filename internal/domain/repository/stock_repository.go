package repository

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// StockRepository define el puerto del ledger (producto, área) -> cantidad.
// Get y GetForUpdate devuelven (nil, nil) si la entrada no existe; los llamadores lo tratan como 0.
type StockRepository interface {
	Get(ctx context.Context, productID, areaID string) (*entity.Stock, error)
	// GetForUpdate bloquea la clave hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, areaID string) (*entity.Stock, error)
	// Upsert sobrescribe la cantidad; nunca crea una segunda entrada para la misma clave.
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error)
	ListByArea(ctx context.Context, areaID string) ([]*entity.Stock, error)
	ListAll(ctx context.Context) ([]*entity.Stock, error)
	DeleteByProduct(ctx context.Context, productID string) (int, error)
}
