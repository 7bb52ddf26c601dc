// Package seed carga datos iniciales a través de los casos de uso, así los datos
// sembrados pasan por las mismas validaciones que los creados vía API.
package seed

import (
	"context"
	"fmt"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/application/usecase"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

// Deps casos de uso que usa el seeder.
type Deps struct {
	Users      *usecase.UserUseCase
	Categories *usecase.CategoryUseCase
	Suppliers  *usecase.SupplierUseCase
	Areas      *usecase.StorageAreaUseCase
	Products   *usecase.ProductUseCase
	Ledger     *inventory.LedgerUseCase
	Movements  *inventory.MovementUseCase

	// para decidir si el store está vacío
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository

	Log *logger.Logger
}

// Result registros creados por tipo.
type Result struct {
	Users      int
	Categories int
	Suppliers  int
	Areas      int
	Products   int
	Stock      int
	Movements  int
}

// Seeder carga un Dataset.
type Seeder struct {
	d   Deps
	log *logger.Logger
}

func NewSeeder(d Deps) *Seeder {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{d: d, log: log.Component("seed")}
}

// SeedIfEmpty carga ds solo si no hay usuarios ni productos. Devuelve false si no hizo nada.
func (s *Seeder) SeedIfEmpty(ctx context.Context, ds Dataset) (bool, error) {
	users, err := s.d.UserRepo.List(ctx)
	if err != nil {
		return false, err
	}
	products, err := s.d.ProductRepo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 || len(products) > 0 {
		s.log.Debug().Int("users", len(users)).Int("products", len(products)).Msg("store con datos; seed omitido")
		return false, nil
	}
	if _, err := s.Seed(ctx, ds); err != nil {
		return false, err
	}
	return true, nil
}

// Seed crea todos los registros de ds en orden de dependencias. Se detiene en el primer error.
func (s *Seeder) Seed(ctx context.Context, ds Dataset) (*Result, error) {
	res := &Result{}
	userIDs := make(map[string]string, len(ds.Users))
	categoryIDs := make(map[string]string, len(ds.Categories))
	supplierIDs := make(map[string]string, len(ds.Suppliers))
	areaIDs := make(map[string]string, len(ds.Areas))
	productIDs := make(map[string]string, len(ds.Products))

	for _, u := range ds.Users {
		out, err := s.d.Users.Create(ctx, dto.CreateUserRequest{
			Username: u.Username, Password: u.Password, FullName: u.FullName, Role: u.Role,
		})
		if err != nil {
			return res, fmt.Errorf("seed: usuario %s: %w", u.Username, err)
		}
		userIDs[u.Username] = out.ID
		res.Users++
	}
	for _, c := range ds.Categories {
		out, err := s.d.Categories.Create(ctx, dto.CreateCategoryRequest{Name: c.Name, Description: c.Description})
		if err != nil {
			return res, fmt.Errorf("seed: categoría %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = out.ID
		res.Categories++
	}
	for _, sp := range ds.Suppliers {
		out, err := s.d.Suppliers.Create(ctx, dto.CreateSupplierRequest{
			Name: sp.Name, ContactName: sp.ContactName, Email: sp.Email, Phone: sp.Phone, Address: sp.Address,
		})
		if err != nil {
			return res, fmt.Errorf("seed: proveedor %s: %w", sp.Name, err)
		}
		supplierIDs[sp.Name] = out.ID
		res.Suppliers++
	}
	for _, a := range ds.Areas {
		out, err := s.d.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: a.Name, Description: a.Description, Capacity: a.Capacity})
		if err != nil {
			return res, fmt.Errorf("seed: área %s: %w", a.Name, err)
		}
		areaIDs[a.Name] = out.ID
		res.Areas++
	}
	for _, p := range ds.Products {
		in := dto.CreateProductRequest{
			SKU: p.SKU, Name: p.Name, Description: p.Description, MinStockLevel: p.MinStockLevel,
		}
		var err error
		if in.CategoryID, err = ref(categoryIDs, "category", p.Category); err != nil {
			return res, err
		}
		if in.SupplierID, err = ref(supplierIDs, "supplier", p.Supplier); err != nil {
			return res, err
		}
		out, err := s.d.Products.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("seed: producto %s: %w", p.SKU, err)
		}
		productIDs[p.SKU] = out.ID
		res.Products++
	}
	for _, st := range ds.Stock {
		productID, err := required(productIDs, "sku", st.SKU)
		if err != nil {
			return res, err
		}
		areaID, err := required(areaIDs, "area", st.Area)
		if err != nil {
			return res, err
		}
		if _, err := s.d.Ledger.SetInventory(ctx, productID, areaID, st.Quantity); err != nil {
			return res, fmt.Errorf("seed: stock %s/%s: %w", st.SKU, st.Area, err)
		}
		res.Stock++
	}
	for i, m := range ds.Movements {
		productID, err := required(productIDs, "sku", m.SKU)
		if err != nil {
			return res, err
		}
		in := inventory.CreateMovementInput{
			ProductID: productID,
			Quantity:  m.Quantity,
			Status:    entity.MovementStatus(m.Status),
		}
		if in.FromAreaID, err = ref(areaIDs, "from", m.From); err != nil {
			return res, err
		}
		if in.ToAreaID, err = ref(areaIDs, "to", m.To); err != nil {
			return res, err
		}
		if m.Username != "" {
			if in.UserID, err = required(userIDs, "username", m.Username); err != nil {
				return res, err
			}
		}
		if _, err := s.d.Movements.CreateMovement(ctx, in); err != nil {
			return res, fmt.Errorf("seed: movimiento #%d (%s): %w", i+1, m.SKU, err)
		}
		res.Movements++
	}

	s.log.Info().
		Int("users", res.Users).
		Int("categories", res.Categories).
		Int("suppliers", res.Suppliers).
		Int("areas", res.Areas).
		Int("products", res.Products).
		Int("stock", res.Stock).
		Int("movements", res.Movements).
		Msg("datos iniciales cargados")
	return res, nil
}

// ref resuelve una referencia opcional por nombre; "" = sin referencia.
func ref(ids map[string]string, field, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}
	id, err := required(ids, field, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func required(ids map[string]string, field, name string) (string, error) {
	id, ok := ids[name]
	if !ok {
		return "", domain.NewValidation(field, fmt.Sprintf("referencia desconocida %q", name))
	}
	return id, nil
}
