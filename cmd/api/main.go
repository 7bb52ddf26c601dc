package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregCodi/WarehousePRO/internal/application/auth"
	"github.com/GregCodi/WarehousePRO/internal/application/seed"
	"github.com/GregCodi/WarehousePRO/internal/bootstrap"
	infrakafka "github.com/GregCodi/WarehousePRO/internal/infrastructure/kafka"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/metrics"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/postgres"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/tracing"
	httpRouter "github.com/GregCodi/WarehousePRO/internal/interfaces/http"
	"github.com/GregCodi/WarehousePRO/pkg/config"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	tp, shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("cerrar exportador de trazas")
		}
	}()
	if cfg.Tracing.Enabled() {
		log.Info().Str("endpoint", cfg.Tracing.Endpoint).Str("service", cfg.Tracing.ServiceName).Msg("exportando trazas OTLP")
	}

	var repos bootstrap.Repositories
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = bootstrap.PostgresRepositories(pool)
	default:
		repos = bootstrap.MemoryRepositories(memory.NewStore())
	}

	opts := bootstrap.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Log: log,
	}
	if tp != nil {
		opts.Tracing = tp
	}

	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		movementMetrics, err := metrics.NewMovementMetrics(registry)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		opts.Metrics = movementMetrics
	}

	// Eventos de movimientos: sin brokers no se publica nada.
	if cfg.Kafka.Enabled() {
		publisher := infrakafka.NewMovementPublisher(cfg.Kafka.Brokers, cfg.Kafka.MovementsTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		opts.Events = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.MovementsTopic).Msg("publicando eventos de movimientos")
	}

	services := bootstrap.NewServices(repos, opts)

	if cfg.Store.SeedDemo {
		seeded, err := services.Seeder.SeedIfEmpty(ctx, seed.DemoDataset())
		if err != nil {
			log.Fatal().Err(err).Msg("carga de datos de demostración")
		}
		if seeded {
			log.Info().Msg("datos de demostración cargados")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "WarehousePRO API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        services.Auth,
		UserUC:        services.Users,
		CategoryUC:    services.Categories,
		SupplierUC:    services.Suppliers,
		StorageAreaUC: services.Areas,
		ProductUC:     services.Products,
		LedgerUC:      services.Ledger,
		MovementUC:    services.Movements,
		DashboardUC:   services.Dashboard,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
