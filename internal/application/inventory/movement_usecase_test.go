package inventory_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) NewID() string { return fmt.Sprintf("id-%04d", g.n.Add(1)) }

type recordingEvents struct {
	mu     sync.Mutex
	events []entity.MovementEvent
}

func (r *recordingEvents) Publish(_ context.Context, e entity.MovementEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) all() []entity.MovementEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.MovementEvent(nil), r.events...)
}

type recordingMetrics struct {
	mu       sync.Mutex
	created  int
	applied  int64
	rejected map[string]int
}

func (m *recordingMetrics) MovementCreated(entity.MovementStatus) {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *recordingMetrics) MovementTransitioned(entity.MovementStatus, entity.MovementStatus) {}

func (m *recordingMetrics) MovementRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejected == nil {
		m.rejected = make(map[string]int)
	}
	m.rejected[reason]++
}

func (m *recordingMetrics) LedgerApplied(units int64) {
	m.mu.Lock()
	m.applied += units
	m.mu.Unlock()
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: Widget con 50 unidades en Zone A, Shipping vacía
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

const (
	productID = "widget"
	zoneA     = "zone-a"
	shipping  = "shipping"
)

type fixture struct {
	movements *inventory.MovementUseCase
	ledger    *inventory.LedgerUseCase
	repo      repository.MovementRepository
	events    *recordingEvents
	metrics   *recordingMetrics
}

func newFixture(t *testing.T, initial int64) *fixture {
	t.Helper()
	return newTracedFixture(t, initial, nil)
}

func newTracedFixture(t *testing.T, initial int64, tp trace.TracerProvider) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	areas := memory.NewStorageAreaRepository(s)
	products := memory.NewProductRepository(s)
	require.NoError(t, areas.Create(ctx, &entity.StorageArea{ID: zoneA, Name: "Zone A", Capacity: 1000}))
	require.NoError(t, areas.Create(ctx, &entity.StorageArea{ID: shipping, Name: "Shipping", Capacity: 500}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: productID, SKU: "WG-1", Name: "Widget", MinStockLevel: 20}))

	f := &fixture{
		repo:    memory.NewMovementRepository(s),
		events:  &recordingEvents{},
		metrics: &recordingMetrics{},
	}
	clock := fixedClock{testNow}
	f.ledger = inventory.NewLedgerUseCase(memory.NewTxRunner(s), products, areas, memory.NewStockRepository(s), clock, nil)
	f.movements = inventory.NewMovementUseCase(inventory.MovementDeps{
		TxRunner:  memory.NewTxRunner(s),
		Products:  products,
		Areas:     areas,
		Movements: f.repo,
		Clock:     clock,
		IDs:       &seqIDs{},
		Events:    f.events,
		Metrics:   f.metrics,
		Tracing:   tp,
	})

	if initial > 0 {
		_, err := f.ledger.SetInventory(ctx, productID, zoneA, initial)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) qty(t *testing.T, areaID string) int64 {
	t.Helper()
	q, err := f.ledger.GetInventory(context.Background(), productID, areaID)
	require.NoError(t, err)
	return q
}

func transfer(qty int64, status entity.MovementStatus) inventory.CreateMovementInput {
	from, to := zoneA, shipping
	return inventory.CreateMovementInput{
		ProductID: productID, FromAreaID: &from, ToAreaID: &to, Quantity: qty, Status: status, UserID: "u1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_CompletadoAplicaLedger(t *testing.T) {
	f := newFixture(t, 50)

	mov, err := f.movements.CreateMovement(context.Background(), transfer(24, entity.MovementCompleted))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementCompleted, mov.Status)
	require.NotNil(t, mov.AppliedAt)
	assert.Equal(t, testNow, *mov.AppliedAt)
	assert.Equal(t, testNow, mov.Date)

	assert.Equal(t, int64(26), f.qty(t, zoneA))
	assert.Equal(t, int64(24), f.qty(t, shipping))
	assert.Equal(t, int64(24), f.metrics.applied)

	events := f.events.all()
	require.Len(t, events, 1)
	assert.Equal(t, entity.MovementEventCreated, events[0].Type)
	assert.True(t, events[0].Applied)
}

func TestCreateMovement_StockBajoTrasCompletar(t *testing.T) {
	f := newFixture(t, 50)

	_, err := f.movements.CreateMovement(context.Background(), transfer(45, entity.MovementCompleted))
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.qty(t, zoneA))
	assert.Equal(t, int64(45), f.qty(t, shipping))
}

func TestCreateMovement_StockInsuficienteNoPersiste(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	_, err := f.movements.CreateMovement(ctx, transfer(60, entity.MovementPending))
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(50), stockErr.Available)
	assert.Equal(t, int64(60), stockErr.Requested)

	list, err := f.movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(50), f.qty(t, zoneA))
	assert.Equal(t, int64(0), f.qty(t, shipping))
	assert.Equal(t, 1, f.metrics.rejected["insufficient_stock"])
	assert.Empty(t, f.events.all())
}

func TestCreateMovement_EntradaYSalidaSinContraparte(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()
	to, from := shipping, zoneA

	_, err := f.movements.CreateMovement(ctx, inventory.CreateMovementInput{
		ProductID: productID, ToAreaID: &to, Quantity: 30, Status: entity.MovementCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30), f.qty(t, shipping))

	_, err = f.movements.CreateMovement(ctx, inventory.CreateMovementInput{
		ProductID: productID, FromAreaID: &from, Quantity: 50, Status: entity.MovementCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.qty(t, zoneA))
}

func TestCreateMovement_Validaciones(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()
	a, empty, missing := zoneA, "", "no-existe"

	cases := []struct {
		name  string
		in    inventory.CreateMovementInput
		field string
	}{
		{"cantidad cero", inventory.CreateMovementInput{ProductID: productID, FromAreaID: &a, Quantity: 0}, "quantity"},
		{"sin áreas", inventory.CreateMovementInput{ProductID: productID, FromAreaID: &empty, Quantity: 1}, "from_area_id"},
		{"misma área", inventory.CreateMovementInput{ProductID: productID, FromAreaID: &a, ToAreaID: &a, Quantity: 1}, "to_area_id"},
		{"sin producto", inventory.CreateMovementInput{FromAreaID: &a, Quantity: 1}, "product_id"},
		{"estado desconocido", inventory.CreateMovementInput{ProductID: productID, FromAreaID: &a, Quantity: 1, Status: "shipped"}, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.movements.CreateMovement(ctx, tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	_, err := f.movements.CreateMovement(ctx, inventory.CreateMovementInput{ProductID: productID, ToAreaID: &missing, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.movements.CreateMovement(ctx, inventory.CreateMovementInput{ProductID: "otro", ToAreaID: &a, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMovement_SpanDeErrorPorStockInsuficiente(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	f := newTracedFixture(t, 50, tp)
	ctx := context.Background()

	_, err := f.movements.CreateMovement(ctx, transfer(60, entity.MovementCompleted))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = f.movements.CreateMovement(ctx, transfer(5, entity.MovementCompleted))
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 2)

	failed := spans[0]
	assert.Equal(t, "inventory.CreateMovement", failed.Name())
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Contains(t, failed.Status().Description, "insuficiente")
	assert.Contains(t, failed.Attributes(), attribute.Int64("movement.quantity", 60))
	assert.Contains(t, failed.Attributes(), attribute.String("product.id", productID))
	require.Len(t, failed.Events(), 1)
	assert.Equal(t, "exception", failed.Events()[0].Name)

	ok := spans[1]
	assert.Equal(t, "inventory.CreateMovement", ok.Name())
	assert.Equal(t, codes.Unset, ok.Status().Code)
	assert.Empty(t, ok.Events())
}

// ──────────────────────────────────────────────────────────────────────────────
// SetMovementStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestSetMovementStatus_PendienteLuegoCompletadoLuegoCancelado(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	mov, err := f.movements.CreateMovement(ctx, transfer(10, ""))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementPending, mov.Status)
	assert.Nil(t, mov.AppliedAt)
	assert.Equal(t, int64(50), f.qty(t, zoneA))

	mov, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementInProgress)
	require.NoError(t, err)
	assert.Equal(t, int64(50), f.qty(t, zoneA), "in_progress no toca el ledger")

	mov, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCompleted)
	require.NoError(t, err)
	assert.True(t, mov.Applied())
	assert.Equal(t, int64(40), f.qty(t, zoneA))
	assert.Equal(t, int64(10), f.qty(t, shipping))

	// repetir completed es no-op y no publica
	_, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(40), f.qty(t, zoneA))
	assert.Len(t, f.events.all(), 3)

	_, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(40), f.qty(t, zoneA))
	assert.Equal(t, int64(10), f.qty(t, shipping))

	stored, err := f.movements.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementCompleted, stored.Status)
}

func TestSetMovementStatus_CanceladoNoAplica(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	mov, err := f.movements.CreateMovement(ctx, transfer(10, entity.MovementPending))
	require.NoError(t, err)
	_, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCancelled)
	require.NoError(t, err)

	_, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(50), f.qty(t, zoneA))
}

func TestSetMovementStatus_RevalidaStockAlCompletar(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	mov, err := f.movements.CreateMovement(ctx, transfer(40, entity.MovementPending))
	require.NoError(t, err)
	_, err = f.ledger.SetInventory(ctx, productID, zoneA, 10)
	require.NoError(t, err)

	_, err = f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCompleted)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(10), stockErr.Available)

	stored, err := f.movements.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementPending, stored.Status)
	assert.Equal(t, int64(10), f.qty(t, zoneA))
	assert.Equal(t, int64(0), f.qty(t, shipping))
}

func TestSetMovementStatus_Inexistente(t *testing.T) {
	f := newFixture(t, 50)
	_, err := f.movements.SetMovementStatus(context.Background(), "nope", entity.MovementCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_ConcurrenteNuncaSobregira(t *testing.T) {
	const stock, qty, workers = 100, 7, 40
	f := newFixture(t, stock)

	var ok atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.movements.CreateMovement(context.Background(), transfer(qty, entity.MovementCompleted)); err == nil {
				ok.Add(1)
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(stock/qty), ok.Load())
	assert.Equal(t, int64(stock%qty), f.qty(t, zoneA))
	assert.Equal(t, int64(stock-stock%qty), f.qty(t, shipping))
}

func TestSetMovementStatus_CompletarConcurrenteRespetaStock(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	ids := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		mov, err := f.movements.CreateMovement(ctx, transfer(10, entity.MovementPending))
		require.NoError(t, err)
		ids = append(ids, mov.ID)
	}

	var ok atomic.Int64
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := f.movements.SetMovementStatus(ctx, id, entity.MovementCompleted); err == nil {
				ok.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int64(5), ok.Load())
	assert.Equal(t, int64(0), f.qty(t, zoneA))
	assert.Equal(t, int64(50), f.qty(t, shipping))
}

func TestSetMovementStatus_MismoMovimientoConcurrenteAplicaUnaVez(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()
	mov, err := f.movements.CreateMovement(ctx, transfer(10, entity.MovementPending))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.movements.SetMovementStatus(ctx, mov.ID, entity.MovementCompleted)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(40), f.qty(t, zoneA))
	assert.Equal(t, int64(10), f.qty(t, shipping))
}

func TestCreateMovement_LectorConcurrenteNuncaVeTrasladoAMedias(t *testing.T) {
	const stock, transfers = 50, 500
	f := newFixture(t, stock)
	ctx := context.Background()

	done := make(chan struct{})
	var reads atomic.Int64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			entries, err := f.ledger.ListByProduct(ctx, productID)
			if !assert.NoError(t, err) {
				return
			}
			var total int64
			for _, e := range entries {
				assert.GreaterOrEqual(t, e.Quantity, int64(0), "cantidad negativa en %s", e.StorageAreaID)
				total += e.Quantity
			}
			assert.Equal(t, int64(stock), total, "débito visible sin su crédito")
			reads.Add(1)

			select {
			case <-done:
				return
			default:
			}
		}
	}()

	for i := 0; i < transfers; i++ {
		from, to := zoneA, shipping
		if i%2 == 1 {
			from, to = shipping, zoneA
		}
		_, err := f.movements.CreateMovement(ctx, inventory.CreateMovementInput{
			ProductID: productID, FromAreaID: &from, ToAreaID: &to, Quantity: 1, Status: entity.MovementCompleted,
		})
		assert.NoError(t, err)
	}
	close(done)
	wg.Wait()

	assert.Positive(t, reads.Load())
	assert.Equal(t, int64(stock), f.qty(t, zoneA))
	assert.Equal(t, int64(0), f.qty(t, shipping))
	assert.Equal(t, int64(transfers), f.metrics.applied)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SetAdjustYLectura(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.Equal(t, int64(0), f.qty(t, zoneA), "entrada ausente lee 0")

	_, err := f.ledger.SetInventory(ctx, productID, zoneA, -1)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)

	s, err := f.ledger.AdjustInventory(ctx, productID, zoneA, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), s.Quantity)
	s, err = f.ledger.AdjustInventory(ctx, productID, zoneA, -100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity)

	_, err = f.ledger.SetInventory(ctx, productID, "no-existe", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.ledger.AdjustInventory(ctx, "no-existe", zoneA, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.ledger.ListByArea(ctx, zoneA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, testNow, list[0].UpdatedAt)
}

func TestLedger_AdjustDesbordadoNoModificaStock(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	_, err := f.ledger.AdjustInventory(ctx, productID, zoneA, math.MaxInt64)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "delta", ve.Field)
	assert.Equal(t, int64(10), f.qty(t, zoneA))
}

func TestCreateMovement_CreditoDesbordadoNoAplica(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	_, err := f.ledger.SetInventory(ctx, productID, shipping, math.MaxInt64)
	require.NoError(t, err)

	_, err = f.movements.CreateMovement(ctx, transfer(1, entity.MovementCompleted))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)

	assert.Equal(t, int64(10), f.qty(t, zoneA), "el débito se descarta con la transacción")
	assert.Equal(t, int64(math.MaxInt64), f.qty(t, shipping))
	list, err := f.movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
