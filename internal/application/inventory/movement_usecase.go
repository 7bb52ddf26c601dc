package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	domaininv "github.com/GregCodi/WarehousePRO/internal/domain/inventory"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

const tracerName = "github.com/GregCodi/WarehousePRO/inventory"

// MovementDeps colaboradores del motor de movimientos. Events y Metrics son opcionales;
// sin Tracing se usa el TracerProvider global.
type MovementDeps struct {
	TxRunner  TxRunner
	Products  repository.ProductRepository
	Areas     repository.StorageAreaRepository
	Movements repository.MovementRepository
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Events    ports.MovementEventPublisher
	Metrics   ports.MovementMetrics
	Tracing   trace.TracerProvider
	Log       *logger.Logger
}

// MovementUseCase motor de movimientos: crea movimientos y los transiciona entre estados.
// Al entrar en completed debita el origen y acredita el destino en una sola transacción,
// con las entradas del ledger bloqueadas (GetForUpdate) durante el check-then-act.
type MovementUseCase struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	areas     repository.StorageAreaRepository
	movements repository.MovementRepository
	clock     ports.Clock
	ids       ports.IDGenerator
	events    ports.MovementEventPublisher
	metrics   ports.MovementMetrics
	tracer    trace.Tracer
	log       *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(d MovementDeps) *MovementUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	tp := d.Tracing
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &MovementUseCase{
		txRunner:  d.TxRunner,
		products:  d.Products,
		areas:     d.Areas,
		movements: d.Movements,
		clock:     d.Clock,
		ids:       d.IDs,
		events:    d.Events,
		metrics:   d.Metrics,
		tracer:    tp.Tracer(tracerName),
		log:       log.Component("movements"),
	}
}

// CreateMovementInput entrada para crear un movimiento. Status vacío = pending.
type CreateMovementInput struct {
	ProductID  string
	FromAreaID *string
	ToAreaID   *string
	Quantity   int64
	Status     entity.MovementStatus
	UserID     string
}

// CreateMovement valida, verifica stock en el origen y persiste el movimiento.
// Si el estado inicial es completed aplica el ledger en la misma transacción.
// Con stock insuficiente devuelve *domain.InsufficientStockError y no persiste nada.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, in CreateMovementInput) (*entity.Movement, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.CreateMovement", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.Int64("movement.quantity", in.Quantity),
		attribute.String("movement.status", string(in.Status)),
	))
	defer span.End()

	mov, err := uc.createMovement(ctx, in)
	if err != nil {
		uc.rejected(span, err)
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.MovementCreated(mov.Status)
		if mov.Applied() {
			uc.metrics.LedgerApplied(mov.Quantity)
		}
	}
	uc.publish(ctx, mov, entity.MovementEventCreated, "")
	return mov, nil
}

func (uc *MovementUseCase) createMovement(ctx context.Context, in CreateMovementInput) (*entity.Movement, error) {
	in.FromAreaID = normalizeArea(in.FromAreaID)
	in.ToAreaID = normalizeArea(in.ToAreaID)
	if in.Status == "" {
		in.Status = entity.MovementPending
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", in.ProductID)
	}
	for _, areaID := range []*string{in.FromAreaID, in.ToAreaID} {
		if areaID == nil {
			continue
		}
		area, err := uc.areas.GetByID(ctx, *areaID)
		if err != nil {
			return nil, err
		}
		if area == nil {
			return nil, domain.NewNotFound("área de almacenamiento", *areaID)
		}
	}

	now := uc.clock.Now()
	mov := &entity.Movement{
		ID:         uc.ids.NewID(),
		ProductID:  in.ProductID,
		FromAreaID: in.FromAreaID,
		ToAreaID:   in.ToAreaID,
		Quantity:   in.Quantity,
		Status:     in.Status,
		Date:       now,
		UserID:     in.UserID,
	}

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		keys := []*string{mov.FromAreaID}
		if mov.Status == entity.MovementCompleted {
			keys = append(keys, mov.ToAreaID)
		}
		entries, err := uc.lockStock(ctx, tx.Stock, mov.ProductID, keys...)
		if err != nil {
			return err
		}
		if err := checkAvailable(mov, entries); err != nil {
			return err
		}
		if mov.Status == entity.MovementCompleted {
			if err := uc.apply(ctx, tx, mov, entries, now); err != nil {
				return err
			}
		}
		return tx.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// SetMovementStatus transiciona el movimiento. Reentrar al mismo estado es un no-op;
// salir de un estado terminal devuelve *domain.TransitionError. Al pasar a completed se
// revalida el stock del origen bajo bloqueo y se aplica el ledger una sola vez.
func (uc *MovementUseCase) SetMovementStatus(ctx context.Context, id string, status entity.MovementStatus) (*entity.Movement, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.SetMovementStatus", trace.WithAttributes(
		attribute.String("movement.id", id),
		attribute.String("movement.status", string(status)),
	))
	defer span.End()

	if !status.Valid() {
		err := domain.NewValidation("status", "estado desconocido: "+string(status))
		uc.rejected(span, err)
		return nil, err
	}

	var (
		mov     *entity.Movement
		prev    entity.MovementStatus
		changed bool
	)
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		current, err := tx.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewNotFound("movimiento", id)
		}
		prev = current.Status
		changed, err = domaininv.Transition(current.Status, status)
		if err != nil {
			return err
		}
		mov = current
		if !changed {
			return nil
		}

		if status == entity.MovementCompleted && !current.Applied() {
			entries, err := uc.lockStock(ctx, tx.Stock, current.ProductID, current.FromAreaID, current.ToAreaID)
			if err != nil {
				return err
			}
			if err := checkAvailable(current, entries); err != nil {
				return err
			}
			if err := uc.apply(ctx, tx, current, entries, uc.clock.Now()); err != nil {
				return err
			}
		}
		current.Status = status
		return tx.Movements.Update(ctx, current)
	})
	if err != nil {
		uc.rejected(span, err)
		return nil, err
	}
	if !changed {
		return mov, nil
	}

	if uc.metrics != nil {
		uc.metrics.MovementTransitioned(prev, mov.Status)
		if mov.Status == entity.MovementCompleted {
			uc.metrics.LedgerApplied(mov.Quantity)
		}
	}
	uc.publish(ctx, mov, entity.MovementEventStatusChanged, prev)
	return mov, nil
}

// GetByID devuelve el movimiento o (nil, nil) si no existe.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return uc.movements.GetByID(ctx, id)
}

// List lista movimientos por fecha descendente.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	for _, s := range filter.Statuses {
		if !s.Valid() {
			return nil, domain.NewValidation("status", "estado desconocido: "+string(s))
		}
	}
	return uc.movements.List(ctx, filter)
}

// apply debita el origen (piso en 0) y acredita el destino. Ambas escrituras viajan en la
// misma tx; entries debe contener las entradas ya bloqueadas.
func (uc *MovementUseCase) apply(ctx context.Context, tx TxRepos, mov *entity.Movement, entries map[string]*entity.Stock, now time.Time) error {
	if mov.FromAreaID != nil {
		current, err := uc.quantity(entries[*mov.FromAreaID], mov.ProductID, *mov.FromAreaID)
		if err != nil {
			return err
		}
		if err := tx.Stock.Upsert(ctx, &entity.Stock{
			ProductID:     mov.ProductID,
			StorageAreaID: *mov.FromAreaID,
			Quantity:      domaininv.Debit(current, mov.Quantity),
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
	}
	if mov.ToAreaID != nil {
		current, err := uc.quantity(entries[*mov.ToAreaID], mov.ProductID, *mov.ToAreaID)
		if err != nil {
			return err
		}
		credited, err := domaininv.Credit(current, mov.Quantity)
		if err != nil {
			return err
		}
		if err := tx.Stock.Upsert(ctx, &entity.Stock{
			ProductID:     mov.ProductID,
			StorageAreaID: *mov.ToAreaID,
			Quantity:      credited,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
	}
	applied := now
	mov.AppliedAt = &applied
	return nil
}

// lockStock bloquea las entradas de las áreas indicadas en orden ascendente de id. El orden
// fijo evita interbloqueos entre traslados A->B y B->A concurrentes.
func (uc *MovementUseCase) lockStock(ctx context.Context, stock repository.StockRepository, productID string, areaIDs ...*string) (map[string]*entity.Stock, error) {
	ids := make([]string, 0, len(areaIDs))
	for _, id := range areaIDs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	sort.Strings(ids)

	entries := make(map[string]*entity.Stock, len(ids))
	for _, id := range ids {
		if _, ok := entries[id]; ok {
			continue
		}
		s, err := stock.GetForUpdate(ctx, productID, id)
		if err != nil {
			return nil, err
		}
		entries[id] = s
	}
	return entries, nil
}

// quantity cantidad de la entrada (0 si no existe). Una cantidad negativa almacenada
// es un bug previo: se registra y se aborta en lugar de recortarla.
func (uc *MovementUseCase) quantity(s *entity.Stock, productID, areaID string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	if s.Quantity < 0 {
		uc.log.Error().
			Str("product_id", productID).
			Str("area_id", areaID).
			Int64("quantity", s.Quantity).
			Msg("cantidad negativa almacenada en el ledger")
		return 0, domain.ErrInvariantViolation
	}
	return s.Quantity, nil
}

func checkAvailable(mov *entity.Movement, entries map[string]*entity.Stock) error {
	if mov.FromAreaID == nil {
		return nil
	}
	var available int64
	if s := entries[*mov.FromAreaID]; s != nil {
		available = s.Quantity
	}
	if available < mov.Quantity {
		return &domain.InsufficientStockError{
			ProductID: mov.ProductID,
			AreaID:    *mov.FromAreaID,
			Requested: mov.Quantity,
			Available: available,
		}
	}
	return nil
}

func validateCreate(in CreateMovementInput) error {
	if in.ProductID == "" {
		return domain.NewValidation("product_id", "requerido")
	}
	if in.Quantity <= 0 {
		return domain.NewValidation("quantity", "debe ser mayor que 0")
	}
	if in.FromAreaID == nil && in.ToAreaID == nil {
		return domain.NewValidation("from_area_id", "se requiere área de origen o de destino")
	}
	if in.FromAreaID != nil && in.ToAreaID != nil && *in.FromAreaID == *in.ToAreaID {
		return domain.NewValidation("to_area_id", "origen y destino deben ser distintos")
	}
	if !in.Status.Valid() {
		return domain.NewValidation("status", "estado desconocido: "+string(in.Status))
	}
	return nil
}

func normalizeArea(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

func (uc *MovementUseCase) rejected(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if uc.metrics != nil {
		uc.metrics.MovementRejected(rejectReason(err))
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvariantViolation):
		return "invariant_violation"
	default:
		return "internal"
	}
}

func (uc *MovementUseCase) publish(ctx context.Context, mov *entity.Movement, eventType string, prev entity.MovementStatus) {
	if uc.events == nil {
		return
	}
	event := entity.MovementEvent{
		EventID:        uc.ids.NewID(),
		Type:           eventType,
		MovementID:     mov.ID,
		ProductID:      mov.ProductID,
		FromAreaID:     mov.FromAreaID,
		ToAreaID:       mov.ToAreaID,
		Quantity:       mov.Quantity,
		Status:         mov.Status,
		PreviousStatus: prev,
		Applied:        mov.Applied(),
		OccurredAt:     uc.clock.Now(),
	}
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.log.Warn().Err(err).
			Str("movement_id", mov.ID).
			Str("event", eventType).
			Msg("no se pudo publicar el evento de movimiento")
	}
}
