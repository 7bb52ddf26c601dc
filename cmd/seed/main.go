// seed carga datos iniciales en PostgreSQL: los de demostración o un fixture JSON.
//
// Uso:
//
//	go run ./cmd/seed                                   datos de demostración
//	go run ./cmd/seed -file stock.json -encoding windows-1252
//	go run ./cmd/seed -file stock.json -dry-run         valida el fixture contra un store en memoria
//
// Sin -force solo carga si no hay usuarios ni productos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/GregCodi/WarehousePRO/internal/application/seed"
	"github.com/GregCodi/WarehousePRO/internal/bootstrap"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/memory"
	"github.com/GregCodi/WarehousePRO/internal/infrastructure/postgres"
	"github.com/GregCodi/WarehousePRO/pkg/config"
	"github.com/GregCodi/WarehousePRO/pkg/logger"
)

func main() {
	file := flag.String("file", "", "fixture JSON (vacío = datos de demostración)")
	encoding := flag.String("encoding", seed.EncodingUTF8, "codificación del fixture: utf-8, iso-8859-1, windows-1252")
	dryRun := flag.Bool("dry-run", false, "carga en memoria y no toca la base")
	force := flag.Bool("force", false, "carga aunque la base ya tenga datos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ds, err := loadDataset(*file, *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer fixture")
	}

	ctx := context.Background()
	var repos bootstrap.Repositories
	if *dryRun {
		repos = bootstrap.MemoryRepositories(memory.NewStore())
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos = bootstrap.PostgresRepositories(pool)
	}

	seeder := bootstrap.NewServices(repos, bootstrap.Options{Log: log}).Seeder
	if !*force {
		seeded, err := seeder.SeedIfEmpty(ctx, ds)
		if err != nil {
			log.Fatal().Err(err).Msg("seed")
		}
		if !seeded {
			log.Info().Msg("la base ya tiene datos; use -force para cargar igual")
		}
		return
	}
	res, err := seeder.Seed(ctx, ds)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Int("users", res.Users).
		Int("products", res.Products).
		Int("stock", res.Stock).
		Int("movements", res.Movements).
		Bool("dry_run", *dryRun).
		Msg("seed completado")
}

func loadDataset(path, encoding string) (seed.Dataset, error) {
	if path == "" {
		return seed.DemoDataset(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return seed.Dataset{}, err
	}
	defer f.Close()
	return seed.DecodeDataset(f, encoding)
}
