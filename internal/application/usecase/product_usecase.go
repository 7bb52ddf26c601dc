package usecase

import (
	"context"
	"strings"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	domaininv "github.com/GregCodi/WarehousePRO/internal/domain/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

// ProductDeps colaboradores del caso de uso de productos.
type ProductDeps struct {
	TxRunner   inventory.TxRunner
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Areas      repository.StorageAreaRepository
	Stock      repository.StockRepository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Log        *logger.Logger
}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos
// o con la sobrescritura administrativa del ledger.
type ProductUseCase struct {
	txRunner   inventory.TxRunner
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	areas      repository.StorageAreaRepository
	stock      repository.StockRepository
	clock      ports.Clock
	ids        ports.IDGenerator
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(d ProductDeps) *ProductUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		txRunner:   d.TxRunner,
		repo:       d.Products,
		categories: d.Categories,
		suppliers:  d.Suppliers,
		areas:      d.Areas,
		stock:      d.Stock,
		clock:      d.Clock,
		ids:        d.IDs,
		log:        log.Component("products"),
	}
}

// Create crea un nuevo producto. Devuelve *domain.DuplicateError si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" {
		return nil, domain.NewValidation("sku", "requerido")
	}
	if name == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	if in.MinStockLevel < 0 {
		return nil, domain.NewValidation("min_stock_level", "debe ser mayor o igual a 0")
	}
	now := uc.clock.Now()
	product := &entity.Product{
		ID:            uc.ids.NewID(),
		SKU:           sku,
		Name:          name,
		Description:   in.Description,
		CategoryID:    optionalRef(in.CategoryID),
		SupplierID:    optionalRef(in.SupplierID),
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.checkRefs(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetWithInventory producto con categoría, proveedor, stock total e inventario por área.
// Un producto sin entradas en el ledger se devuelve con TotalStock 0.
func (uc *ProductUseCase) GetWithInventory(ctx context.Context, id string) (*dto.ProductWithInventoryResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	areaNames, err := uc.areaNames(ctx)
	if err != nil {
		return nil, err
	}
	return uc.withInventory(ctx, product, areaNames)
}

// Update actualiza un producto; revalida SKU único y referencias.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.NewValidation("sku", "requerido")
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidation("name", "requerido")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = optionalRef(in.CategoryID)
	}
	if in.SupplierID != nil {
		product.SupplierID = optionalRef(in.SupplierID)
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.NewValidation("min_stock_level", "debe ser mayor o igual a 0")
		}
		product.MinStockLevel = *in.MinStockLevel
	}
	if err := uc.checkRefs(ctx, product); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ListWithInventory lista productos con su inventario por área.
func (uc *ProductUseCase) ListWithInventory(ctx context.Context) ([]dto.ProductWithInventoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	areaNames, err := uc.areaNames(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductWithInventoryResponse, 0, len(list))
	for _, p := range list {
		item, err := uc.withInventory(ctx, p, areaNames)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Delete borra el producto junto con sus entradas del ledger y sus movimientos,
// todo en una sola transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	var stockRows, movementRows int
	err := uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFound("producto", id)
		}
		if stockRows, err = tx.Stock.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if movementRows, err = tx.Movements.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return tx.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("product_id", id).
		Int("stock_rows", stockRows).
		Int("movement_rows", movementRows).
		Msg("producto eliminado en cascada")
	return nil
}

func (uc *ProductUseCase) withInventory(ctx context.Context, p *entity.Product, areaNames map[string]string) (*dto.ProductWithInventoryResponse, error) {
	entries, err := uc.stock.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductWithInventoryResponse{
		ProductResponse: *dto.NewProductResponse(p),
		InventoryByArea: make([]dto.ProductAreaInventoryResponse, 0, len(entries)),
	}
	if p.CategoryID != nil {
		c, err := uc.categories.GetByID(ctx, *p.CategoryID)
		if err != nil {
			return nil, err
		}
		out.Category = dto.NewCategoryResponse(c)
	}
	if p.SupplierID != nil {
		s, err := uc.suppliers.GetByID(ctx, *p.SupplierID)
		if err != nil {
			return nil, err
		}
		out.Supplier = dto.NewSupplierResponse(s)
	}
	for _, e := range entries {
		out.InventoryByArea = append(out.InventoryByArea, dto.ProductAreaInventoryResponse{
			StorageAreaID:   e.StorageAreaID,
			StorageAreaName: areaNames[e.StorageAreaID],
			Quantity:        e.Quantity,
			UpdatedAt:       e.UpdatedAt,
		})
	}
	out.TotalStock = domaininv.TotalStock(entries)
	out.LowStock = domaininv.IsLowStock(out.TotalStock, p.MinStockLevel)
	return out, nil
}

func (uc *ProductUseCase) areaNames(ctx context.Context) (map[string]string, error) {
	areas, err := uc.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(areas))
	for _, a := range areas {
		names[a.ID] = a.Name
	}
	return names, nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, p *entity.Product) error {
	if p.CategoryID != nil {
		c, err := uc.categories.GetByID(ctx, *p.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFound("categoría", *p.CategoryID)
		}
	}
	if p.SupplierID != nil {
		s, err := uc.suppliers.GetByID(ctx, *p.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewNotFound("proveedor", *p.SupplierID)
		}
	}
	return nil
}

// optionalRef normaliza referencias opcionales: "" = sin referencia.
func optionalRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
