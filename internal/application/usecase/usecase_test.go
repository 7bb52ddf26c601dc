package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregCodi/WarehousePRO/internal/application/auth"
	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/bootstrap"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newServices(t *testing.T) *bootstrap.Services {
	t.Helper()
	return bootstrap.NewServices(bootstrap.MemoryRepositories(memory.NewStore()), bootstrap.Options{
		JWT: auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"},
	})
}

func strPtr(s string) *string { return &s }

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, field, ve.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CRUD(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Categories.Create(ctx, dto.CreateCategoryRequest{Name: "  "})
	requireField(t, err, "name")

	c, err := svc.Categories.Create(ctx, dto.CreateCategoryRequest{Name: "Electronics", Description: "Devices"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)

	_, err = svc.Categories.Create(ctx, dto.CreateCategoryRequest{Name: "Electronics"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := svc.Categories.Update(ctx, c.ID, dto.UpdateCategoryRequest{Name: strPtr("Gadgets")})
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", updated.Name)
	assert.Equal(t, "Devices", updated.Description)

	_, err = svc.Categories.Update(ctx, "nope", dto.UpdateCategoryRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing, err := svc.Categories.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, svc.Categories.Delete(ctx, c.ID))
	list, err := svc.Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplier_BorradoReferenciadoConflicto(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	s, err := svc.Suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Acme", Email: "sales@acme.test"})
	require.NoError(t, err)
	_, err = svc.Suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "A-1", Name: "Anvil", SupplierID: &s.ID})
	require.NoError(t, err)

	err = svc.Suppliers.Delete(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStorageArea_BorradoConInventarioConflicto(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: "Zone A", Capacity: -1})
	requireField(t, err, "capacity")

	a, err := svc.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: "Zone A", Capacity: 100})
	require.NoError(t, err)
	p, err := svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "A-1", Name: "Anvil"})
	require.NoError(t, err)
	_, err = svc.Ledger.SetInventory(ctx, p.ID, a.ID, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Areas.Delete(ctx, a.ID), domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_SKUUnicoYReferencias(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "", Name: "X"})
	requireField(t, err, "sku")
	_, err = svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "X", MinStockLevel: -1})
	requireField(t, err, "min_stock_level")
	_, err = svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "X", CategoryID: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c, err := svc.Categories.Create(ctx, dto.CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)
	p, err := svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "X", CategoryID: &c.ID})
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)

	_, err = svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "Y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// "" desasigna la categoría
	p, err = svc.Products.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, p.CategoryID)
	require.NoError(t, svc.Categories.Delete(ctx, c.ID))
}

func TestProduct_BorradoEnCascada(t *testing.T) {
	r := bootstrap.MemoryRepositories(memory.NewStore())
	svc := bootstrap.NewServices(r, bootstrap.Options{})
	ctx := context.Background()

	a, err := svc.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: "Zone A", Capacity: 100})
	require.NoError(t, err)
	b, err := svc.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: "Zone B", Capacity: 100})
	require.NoError(t, err)
	p, err := svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "X"})
	require.NoError(t, err)
	_, err = svc.Ledger.SetInventory(ctx, p.ID, a.ID, 10)
	require.NoError(t, err)
	_, err = svc.Movements.CreateMovement(ctx, inventory.CreateMovementInput{
		ProductID: p.ID, FromAreaID: &a.ID, ToAreaID: &b.ID, Quantity: 4, Status: entity.MovementCompleted,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Products.Delete(ctx, p.ID))

	entries, err := r.Stock.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	movs, err := r.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	// el área ya no está referenciada
	require.NoError(t, svc.Areas.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Products.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProduct_GetWithInventory(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	a, err := svc.Areas.Create(ctx, dto.CreateStorageAreaRequest{Name: "Zone A", Capacity: 100})
	require.NoError(t, err)
	p, err := svc.Products.Create(ctx, dto.CreateProductRequest{SKU: "X-1", Name: "X", MinStockLevel: 5})
	require.NoError(t, err)

	withInv, err := svc.Products.GetWithInventory(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), withInv.TotalStock)
	assert.True(t, withInv.LowStock)
	assert.Empty(t, withInv.InventoryByArea)

	_, err = svc.Ledger.SetInventory(ctx, p.ID, a.ID, 6)
	require.NoError(t, err)
	list, err := svc.Products.ListWithInventory(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(6), list[0].TotalStock)
	assert.False(t, list[0].LowStock)
	assert.Equal(t, "Zone A", list[0].InventoryByArea[0].StorageAreaName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_ValidacionesYUnicidad(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	_, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "123", Role: "worker"})
	requireField(t, err, "password")
	_, err = svc.Users.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto", Role: "root"})
	requireField(t, err, "role")

	u, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto", FullName: "Ana", Role: "worker"})
	require.NoError(t, err)
	assert.True(t, u.Active)

	_, err = svc.Users.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto", Role: "worker"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUser_UltimoAdminProtegido(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	admin, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "admin123", Role: "admin"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Users.Delete(ctx, admin.ID), domain.ErrConflict)
	_, err = svc.Users.Update(ctx, admin.ID, dto.UpdateUserRequest{Role: strPtr("manager")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	inactive := false
	_, err = svc.Users.Update(ctx, admin.ID, dto.UpdateUserRequest{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrConflict)

	second, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "admin2", Password: "admin123", Role: "admin"})
	require.NoError(t, err)
	require.NoError(t, svc.Users.Delete(ctx, admin.ID))
	assert.ErrorIs(t, svc.Users.Delete(ctx, second.ID), domain.ErrConflict)
}

func TestUser_CambioDeContraseñaPermiteLogin(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	u, err := svc.Users.Create(ctx, dto.CreateUserRequest{Username: "bob", Password: "viejo123", Role: "manager"})
	require.NoError(t, err)
	_, err = svc.Users.Update(ctx, u.ID, dto.UpdateUserRequest{Password: strPtr("nuevo123")})
	require.NoError(t, err)

	_, err = svc.Auth.Login(ctx, dto.LoginRequest{Username: "bob", Password: "viejo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	out, err := svc.Auth.Login(ctx, dto.LoginRequest{Username: "bob", Password: "nuevo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "manager", out.User.Role)
}
