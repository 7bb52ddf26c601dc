package inventory

import (
	"context"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	domaininv "github.com/GregCodi/WarehousePRO/internal/domain/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

// LedgerUseCase lectura y corrección administrativa del ledger (producto, área) -> cantidad.
// SetInventory y AdjustInventory no pasan por la validación de movimientos.
type LedgerUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	areas    repository.StorageAreaRepository
	stock    repository.StockRepository
	clock    ports.Clock
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	areas repository.StorageAreaRepository,
	stock repository.StockRepository,
	clock ports.Clock,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		products: products,
		areas:    areas,
		stock:    stock,
		clock:    clock,
		log:      log.Component("ledger"),
	}
}

// GetInventory cantidad actual; 0 si la entrada no existe.
func (uc *LedgerUseCase) GetInventory(ctx context.Context, productID, areaID string) (int64, error) {
	s, err := uc.stock.Get(ctx, productID, areaID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, nil
	}
	if s.Quantity < 0 {
		uc.log.Error().Str("product_id", productID).Str("area_id", areaID).Int64("quantity", s.Quantity).
			Msg("cantidad negativa almacenada en el ledger")
		return 0, domain.ErrInvariantViolation
	}
	return s.Quantity, nil
}

// SetInventory sobrescribe la cantidad (crea la entrada si no existe). quantity debe ser >= 0.
func (uc *LedgerUseCase) SetInventory(ctx context.Context, productID, areaID string, quantity int64) (*entity.Stock, error) {
	if quantity < 0 {
		return nil, domain.NewValidation("quantity", "debe ser mayor o igual a 0")
	}
	if err := uc.ensureRefs(ctx, productID, areaID); err != nil {
		return nil, err
	}
	var out *entity.Stock
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if _, err := tx.Stock.GetForUpdate(ctx, productID, areaID); err != nil {
			return err
		}
		out = &entity.Stock{ProductID: productID, StorageAreaID: areaID, Quantity: quantity, UpdatedAt: uc.clock.Now()}
		return tx.Stock.Upsert(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustInventory suma delta a la cantidad actual con piso en 0.
func (uc *LedgerUseCase) AdjustInventory(ctx context.Context, productID, areaID string, delta int64) (*entity.Stock, error) {
	if err := uc.ensureRefs(ctx, productID, areaID); err != nil {
		return nil, err
	}
	var out *entity.Stock
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		current, err := tx.Stock.GetForUpdate(ctx, productID, areaID)
		if err != nil {
			return err
		}
		var qty int64
		if current != nil {
			if current.Quantity < 0 {
				uc.log.Error().Str("product_id", productID).Str("area_id", areaID).Int64("quantity", current.Quantity).
					Msg("cantidad negativa almacenada en el ledger")
				return domain.ErrInvariantViolation
			}
			qty = current.Quantity
		}
		adjusted, err := domaininv.Adjust(qty, delta)
		if err != nil {
			return err
		}
		out = &entity.Stock{
			ProductID:     productID,
			StorageAreaID: areaID,
			Quantity:      adjusted,
			UpdatedAt:     uc.clock.Now(),
		}
		return tx.Stock.Upsert(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProduct entradas del producto en todas las áreas.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	return uc.stock.ListByProduct(ctx, productID)
}

// ListByArea entradas de todos los productos en un área.
func (uc *LedgerUseCase) ListByArea(ctx context.Context, areaID string) ([]*entity.Stock, error) {
	return uc.stock.ListByArea(ctx, areaID)
}

func (uc *LedgerUseCase) ensureRefs(ctx context.Context, productID, areaID string) error {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("producto", productID)
	}
	area, err := uc.areas.GetByID(ctx, areaID)
	if err != nil {
		return err
	}
	if area == nil {
		return domain.NewNotFound("área de almacenamiento", areaID)
	}
	return nil
}
