// Command seed applies migrations and loads the demo catalog. It is safe
// to run repeatedly.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/config"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/seed"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/migrations"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("product-review-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		log.Error("connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Error("run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	base := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	res, err := seed.Run(ctx, pool, seed.Catalog, base, log)
	if err != nil {
		log.Error("seed catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("seed complete",
		slog.Int64("products_inserted", res.Products),
		slog.Int64("reviews_inserted", res.Reviews),
	)
}
