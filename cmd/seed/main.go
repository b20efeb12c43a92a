package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/GreatHerb/camera-review-analyzer/config"
	"github.com/GreatHerb/camera-review-analyzer/internal/clients"
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/models"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

func ratingOf(v float64) *float64 { return &v }

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.FromEnvStorageOnly()

	ctx := context.Background()

	pg, err := clients.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("[Main] Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pg.Close()

	reviews := store.NewReviewStore(pg.DB)
	if err := reviews.EnsureSchema(ctx); err != nil {
		slog.Error("[Main] Failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now()
	samples := []models.Review{
		{Source: "sample", Rating: ratingOf(4.5), Content: "AF가 빠르고 가벼워서 좋아요.", CreatedAt: now},
		{Source: "sample", Rating: ratingOf(2.0), Content: "저조도에서 노이즈가 심해요.", CreatedAt: now},
		{Source: "sample", Rating: ratingOf(4.0), Content: "색감이 만족스럽고 휴대성도 좋아요.", CreatedAt: now},
	}

	inserted, err := reviews.SeedSamples(ctx, samples)
	if err != nil {
		slog.Error("[Main] Failed to seed samples", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Main] Sample reviews loaded", slog.Int("inserted", inserted))
}
