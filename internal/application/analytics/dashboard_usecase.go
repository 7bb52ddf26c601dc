// Package analytics contiene las vistas agregadas del inventario: stock total, stock bajo,
// ocupación de áreas y el resumen del dashboard. Todo se calcula bajo demanda a partir
// del ledger, sin caché.
package analytics

import (
	"context"
	"fmt"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	domaininv "github.com/GregCodi/WarehousePRO/internal/domain/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

const defaultRecentMovements = 5 // movimientos en el widget de actividad reciente

// DashboardDeps repositorios de solo lectura que usa el dashboard.
type DashboardDeps struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Areas      repository.StorageAreaRepository
	Stock      repository.StockRepository
	Movements  repository.MovementRepository
	Users      repository.UserRepository
}

// DashboardUseCase genera los agregados del inventario.
type DashboardUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	areas      repository.StorageAreaRepository
	stock      repository.StockRepository
	movements  repository.MovementRepository
	users      repository.UserRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(d DashboardDeps) *DashboardUseCase {
	return &DashboardUseCase{
		products:   d.Products,
		categories: d.Categories,
		areas:      d.Areas,
		stock:      d.Stock,
		movements:  d.Movements,
		users:      d.Users,
	}
}

// TotalStock suma del producto en todas las áreas.
func (uc *DashboardUseCase) TotalStock(ctx context.Context, productID string) (int64, error) {
	entries, err := uc.stock.ListByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return domaininv.TotalStock(entries), nil
}

// IsLowStock total <= MinStockLevel.
func (uc *DashboardUseCase) IsLowStock(ctx context.Context, product *entity.Product) (bool, error) {
	total, err := uc.TotalStock(ctx, product.ID)
	if err != nil {
		return false, err
	}
	return domaininv.IsLowStock(total, product.MinStockLevel), nil
}

// LowStockItems una fila por entrada del ledger de cada producto con stock bajo.
// Los productos sin entradas no generan filas.
func (uc *DashboardUseCase) LowStockItems(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := uc.stock.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	areas, err := uc.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]*entity.Stock, len(products))
	for _, e := range entries {
		byProduct[e.ProductID] = append(byProduct[e.ProductID], e)
	}
	areaByID := make(map[string]*entity.StorageArea, len(areas))
	for _, a := range areas {
		areaByID[a.ID] = a
	}
	categoryByID := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	items := make([]dto.LowStockItemDTO, 0)
	for _, p := range products {
		rows := byProduct[p.ID]
		total := domaininv.TotalStock(rows)
		if len(rows) == 0 || !domaininv.IsLowStock(total, p.MinStockLevel) {
			continue
		}
		var category *dto.CategoryResponse
		if p.CategoryID != nil {
			category = dto.NewCategoryResponse(categoryByID[*p.CategoryID])
		}
		for _, e := range rows {
			area := areaByID[e.StorageAreaID]
			if area == nil {
				// el área se borró entre las dos lecturas
				continue
			}
			items = append(items, dto.LowStockItemDTO{
				Product:      *dto.NewProductResponse(p),
				Category:     category,
				CurrentStock: e.Quantity,
				TotalStock:   total,
				StorageArea:  *dto.NewStorageAreaResponse(area),
			})
		}
	}
	return items, nil
}

// StorageUtilization round(100 * unidades almacenadas / capacidad total); 0 sin capacidad.
func (uc *DashboardUseCase) StorageUtilization(ctx context.Context) (int64, error) {
	entries, err := uc.stock.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	areas, err := uc.areas.List(ctx)
	if err != nil {
		return 0, err
	}
	var capacity int64
	for _, a := range areas {
		capacity += a.Capacity
	}
	return domaininv.Utilization(domaininv.TotalStock(entries), capacity), nil
}

// StorageOccupancy ocupación por área, en el orden de listado de las áreas.
func (uc *DashboardUseCase) StorageOccupancy(ctx context.Context) ([]dto.StorageOccupancyDTO, error) {
	areas, err := uc.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := uc.stock.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]int64, len(areas))
	for _, e := range entries {
		stored[e.StorageAreaID] += e.Quantity
	}
	out := make([]dto.StorageOccupancyDTO, 0, len(areas))
	for _, a := range areas {
		out = append(out, dto.StorageOccupancyDTO{
			StorageAreaID:   a.ID,
			StorageAreaName: a.Name,
			Stored:          stored[a.ID],
			Capacity:        a.Capacity,
			Percent:         domaininv.OccupancyPercent(stored[a.ID], a.Capacity),
		})
	}
	return out, nil
}

// Stats construye el DashboardStatsDTO.
//
// Cuatro lecturas en paralelo:
//  1. productos           → TotalProducts
//  2. LowStockItems       → LowStockItems (número de filas)
//  3. pending+in_progress → PendingMovements
//  4. StorageUtilization  → StorageUtilization
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type utilResult struct {
		pct int64
		err error
	}

	productsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)
	utilCh := make(chan utilResult, 1)

	go func() {
		list, err := uc.products.List(ctx)
		productsCh <- countResult{len(list), err}
	}()
	go func() {
		items, err := uc.LowStockItems(ctx)
		lowCh <- countResult{len(items), err}
	}()
	go func() {
		n, err := uc.movements.CountByStatus(ctx, entity.MovementPending, entity.MovementInProgress)
		pendingCh <- countResult{n, err}
	}()
	go func() {
		pct, err := uc.StorageUtilization(ctx)
		utilCh <- utilResult{pct, err}
	}()

	products := <-productsCh
	low := <-lowCh
	pending := <-pendingCh
	util := <-utilCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos pendientes: %w", pending.err)
	}
	if util.err != nil {
		return nil, fmt.Errorf("dashboard: utilización: %w", util.err)
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:      products.n,
		LowStockItems:      low.n,
		PendingMovements:   pending.n,
		StorageUtilization: util.pct,
	}, nil
}

// RecentMovements últimos movimientos por fecha descendente con nombres de producto,
// áreas y usuario. limit <= 0 usa 5.
func (uc *DashboardUseCase) RecentMovements(ctx context.Context, limit int) ([]dto.RecentMovementDTO, error) {
	if limit <= 0 {
		limit = defaultRecentMovements
	}
	movements, err := uc.movements.List(ctx, repository.MovementFilter{Limit: limit})
	if err != nil {
		return nil, err
	}

	products := make(map[string]*entity.Product)
	areas := make(map[string]*entity.StorageArea)
	users := make(map[string]*entity.User)

	out := make([]dto.RecentMovementDTO, 0, len(movements))
	for _, m := range movements {
		item := dto.RecentMovementDTO{MovementResponse: *dto.NewMovementResponse(m)}

		p, err := lookup(ctx, products, m.ProductID, uc.products.GetByID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			item.ProductName, item.ProductSKU = p.Name, p.SKU
		}
		if m.FromAreaID != nil {
			a, err := lookup(ctx, areas, *m.FromAreaID, uc.areas.GetByID)
			if err != nil {
				return nil, err
			}
			if a != nil {
				item.FromAreaName = a.Name
			}
		}
		if m.ToAreaID != nil {
			a, err := lookup(ctx, areas, *m.ToAreaID, uc.areas.GetByID)
			if err != nil {
				return nil, err
			}
			if a != nil {
				item.ToAreaName = a.Name
			}
		}
		if m.UserID != "" {
			u, err := lookup(ctx, users, m.UserID, uc.users.GetByID)
			if err != nil {
				return nil, err
			}
			if u != nil {
				item.Username = u.Username
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// lookup memoiza las búsquedas por id dentro de una misma respuesta.
func lookup[T any](ctx context.Context, cache map[string]*T, id string, get func(context.Context, string) (*T, error)) (*T, error) {
	if v, ok := cache[id]; ok {
		return v, nil
	}
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = v
	return v, nil
}
