package inventory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Movements repository.MovementRepository
	Stock     repository.StockRepository
	Products  repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no se persiste nada,
// y los bloqueos tomados con GetForUpdate se mantienen hasta el Commit/Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
