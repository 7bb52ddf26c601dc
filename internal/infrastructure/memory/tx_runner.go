package memory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner unidad de trabajo en memoria: lo que fn escribe se confirma junto o no se confirma.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) Run(ctx context.Context, fn func(tx inventory.TxRepos) error) error {
	u := t.s.begin()
	defer u.release()

	if err := fn(inventory.TxRepos{
		Movements: &MovementRepo{s: t.s, u: u},
		Stock:     &StockRepo{s: t.s, u: u},
		Products:  &ProductRepo{s: t.s, u: u},
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return u.commit()
}
