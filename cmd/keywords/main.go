package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GreatHerb/camera-review-analyzer/config"
	"github.com/GreatHerb/camera-review-analyzer/internal/clients"
	"github.com/GreatHerb/camera-review-analyzer/internal/filter"
	"github.com/GreatHerb/camera-review-analyzer/internal/keywords"
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

func main() {
	topK := flag.Int("top-k", keywords.DefaultTopK, "keywords kept per (camera, sentiment) group")
	flag.Parse()

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

	vocab := filter.DefaultVocabulary()
	if cfg.VocabPath != "" {
		vocab, err = filter.LoadVocabulary(cfg.VocabPath)
		if err != nil {
			slog.Warn("[Main] Falling back to built-in vocabulary", slog.String("error", err.Error()))
		}
	}

	aggregator := keywords.NewAggregator(reviews, vocab.StopwordSet(), *topK)

	rows, err := aggregator.Run(ctx)
	if err != nil {
		slog.Error("[Main] Aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Main] Keyword stats updated", slog.Int("rows", rows))
}
