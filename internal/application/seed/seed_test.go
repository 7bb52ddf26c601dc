package seed_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregCodi/WarehousePRO/internal/application/seed"
	"github.com/GregCodi/WarehousePRO/internal/bootstrap"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Seeder
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_DemoDataset(t *testing.T) {
	svc := bootstrap.NewServices(bootstrap.MemoryRepositories(memory.NewStore()), bootstrap.Options{})
	ctx := context.Background()

	res, err := svc.Seeder.Seed(ctx, seed.DemoDataset())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Users)
	assert.Equal(t, 5, res.Areas)
	assert.Equal(t, 9, res.Products)
	assert.Equal(t, 5, res.Movements)

	users, err := svc.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestSeedIfEmpty_SoloLaPrimeraVez(t *testing.T) {
	svc := bootstrap.NewServices(bootstrap.MemoryRepositories(memory.NewStore()), bootstrap.Options{})
	ctx := context.Background()

	seeded, err := svc.Seeder.SeedIfEmpty(ctx, seed.DemoDataset())
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.Seeder.SeedIfEmpty(ctx, seed.DemoDataset())
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSeed_ReferenciaDesconocida(t *testing.T) {
	svc := bootstrap.NewServices(bootstrap.MemoryRepositories(memory.NewStore()), bootstrap.Options{})

	_, err := svc.Seeder.Seed(context.Background(), seed.Dataset{
		Products: []seed.ProductSeed{{SKU: "X-1", Name: "X", Category: "Nope"}},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "category", ve.Field)
}

func TestSeed_MovimientoSinStockSeDetiene(t *testing.T) {
	svc := bootstrap.NewServices(bootstrap.MemoryRepositories(memory.NewStore()), bootstrap.Options{})

	res, err := svc.Seeder.Seed(context.Background(), seed.Dataset{
		Areas:     []seed.AreaSeed{{Name: "A", Capacity: 10}, {Name: "B", Capacity: 10}},
		Products:  []seed.ProductSeed{{SKU: "X-1", Name: "X"}},
		Stock:     []seed.StockSeed{{SKU: "X-1", Area: "A", Quantity: 2}},
		Movements: []seed.MovementSeed{{SKU: "X-1", From: "A", To: "B", Quantity: 3, Status: "completed"}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, res.Stock)
	assert.Equal(t, 0, res.Movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeDataset_Latin1(t *testing.T) {
	// "Almacén" en ISO-8859-1: é = 0xE9
	raw := []byte(`{"storage_areas":[{"name":"Almac` + "\xe9" + `n","capacity":10}]}`)

	ds, err := seed.DecodeDataset(bytes.NewReader(raw), seed.EncodingLatin1)
	require.NoError(t, err)
	require.Len(t, ds.Areas, 1)
	assert.Equal(t, "Almacén", ds.Areas[0].Name)
	assert.Equal(t, int64(10), ds.Areas[0].Capacity)
}

func TestDecodeDataset_UTF8PorDefecto(t *testing.T) {
	ds, err := seed.DecodeDataset(strings.NewReader(`{"categories":[{"name":"Electrónica"}]}`), "")
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", ds.Categories[0].Name)
}

func TestDecodeDataset_Errores(t *testing.T) {
	_, err := seed.DecodeDataset(strings.NewReader(`{"productos":[]}`), seed.EncodingUTF8)
	assert.Error(t, err, "campo desconocido")

	_, err = seed.DecodeDataset(strings.NewReader(`{}`), "ebcdic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebcdic")
}
