// Package bootstrap arma los casos de uso sobre un sustrato de persistencia (memoria o PostgreSQL).
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/GregCodi/WarehousePRO/internal/application/analytics"
	"github.com/GregCodi/WarehousePRO/internal/application/auth"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/application/seed"
	"github.com/GregCodi/WarehousePRO/internal/application/usecase"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/postgres"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/system"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

// Repositories puertos de persistencia de un mismo sustrato.
type Repositories struct {
	TxRunner   inventory.TxRunner
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Areas      repository.StorageAreaRepository
	Products   repository.ProductRepository
	Users      repository.UserRepository
	Stock      repository.StockRepository
	Movements  repository.MovementRepository
}

// MemoryRepositories repositorios sobre un Store en memoria.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		TxRunner:   memory.NewTxRunner(s),
		Categories: memory.NewCategoryRepository(s),
		Suppliers:  memory.NewSupplierRepository(s),
		Areas:      memory.NewStorageAreaRepository(s),
		Products:   memory.NewProductRepository(s),
		Users:      memory.NewUserRepository(s),
		Stock:      memory.NewStockRepository(s),
		Movements:  memory.NewMovementRepository(s),
	}
}

// PostgresRepositories repositorios sobre el pool; las transacciones las abre el TxRunner.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		TxRunner:   postgres.NewTxRunner(pool),
		Categories: postgres.NewCategoryRepository(pool),
		Suppliers:  postgres.NewSupplierRepository(pool),
		Areas:      postgres.NewStorageAreaRepository(pool),
		Products:   postgres.NewProductRepository(pool),
		Users:      postgres.NewUserRepository(pool),
		Stock:      postgres.NewStockRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
	}
}

// Options colaboradores opcionales. Clock e IDs por defecto son los del sistema.
type Options struct {
	JWT     auth.JWTConfig
	Clock   ports.Clock
	IDs     ports.IDGenerator
	Events  ports.MovementEventPublisher
	Metrics ports.MovementMetrics
	Tracing trace.TracerProvider
	Log     *logger.Logger
}

// Services casos de uso listos para los handlers y el seeder.
type Services struct {
	Auth       *auth.AuthUseCase
	Users      *usecase.UserUseCase
	Categories *usecase.CategoryUseCase
	Suppliers  *usecase.SupplierUseCase
	Areas      *usecase.StorageAreaUseCase
	Products   *usecase.ProductUseCase
	Ledger     *inventory.LedgerUseCase
	Movements  *inventory.MovementUseCase
	Dashboard  *analytics.DashboardUseCase
	Seeder     *seed.Seeder
}

// NewServices construye todos los casos de uso sobre r.
func NewServices(r Repositories, o Options) *Services {
	if o.Clock == nil {
		o.Clock = system.Clock{}
	}
	if o.IDs == nil {
		o.IDs = system.UUIDGenerator{}
	}
	if o.Log == nil {
		o.Log = logger.Nop()
	}

	s := &Services{
		Auth:       auth.NewAuthUseCase(r.Users, o.JWT),
		Users:      usecase.NewUserUseCase(r.Users, o.Clock, o.IDs),
		Categories: usecase.NewCategoryUseCase(r.Categories, o.Clock, o.IDs),
		Suppliers:  usecase.NewSupplierUseCase(r.Suppliers, o.Clock, o.IDs),
		Areas:      usecase.NewStorageAreaUseCase(r.Areas, o.Clock, o.IDs),
		Products: usecase.NewProductUseCase(usecase.ProductDeps{
			TxRunner:   r.TxRunner,
			Products:   r.Products,
			Categories: r.Categories,
			Suppliers:  r.Suppliers,
			Areas:      r.Areas,
			Stock:      r.Stock,
			Clock:      o.Clock,
			IDs:        o.IDs,
			Log:        o.Log,
		}),
		Ledger: inventory.NewLedgerUseCase(r.TxRunner, r.Products, r.Areas, r.Stock, o.Clock, o.Log),
		Movements: inventory.NewMovementUseCase(inventory.MovementDeps{
			TxRunner:  r.TxRunner,
			Products:  r.Products,
			Areas:     r.Areas,
			Movements: r.Movements,
			Clock:     o.Clock,
			IDs:       o.IDs,
			Events:    o.Events,
			Metrics:   o.Metrics,
			Tracing:   o.Tracing,
			Log:       o.Log,
		}),
		Dashboard: analytics.NewDashboardUseCase(analytics.DashboardDeps{
			Products:   r.Products,
			Categories: r.Categories,
			Areas:      r.Areas,
			Stock:      r.Stock,
			Movements:  r.Movements,
			Users:      r.Users,
		}),
	}
	s.Seeder = seed.NewSeeder(seed.Deps{
		Users:       s.Users,
		Categories:  s.Categories,
		Suppliers:   s.Suppliers,
		Areas:       s.Areas,
		Products:    s.Products,
		Ledger:      s.Ledger,
		Movements:   s.Movements,
		UserRepo:    r.Users,
		ProductRepo: r.Products,
		Log:         o.Log,
	})
	return s
}
