package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/GreatHerb/camera-review-analyzer/config"
	"github.com/GreatHerb/camera-review-analyzer/internal/clients"
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/sentiment"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

func main() {
	limit := flag.Int("limit", sentiment.DefaultBatchSize, "rows per labeling batch")
	backend := flag.String("backend", "hugot", "classifier backend: hugot or lexicon")
	model := flag.String("model", "", "hugot model name (default: nlptown multilingual sentiment)")
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

	var classifier sentiment.Classifier
	switch *backend {
	case "hugot":
		modelName := *model
		if modelName == "" {
			modelName = cfg.Model
		}
		hc, err := sentiment.NewHugotClassifier(cfg.ModelDir, modelName)
		if err != nil {
			slog.Error("[Main] Failed to initialize classifier", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer hc.Close()
		classifier = hc
	case "lexicon":
		classifier = sentiment.NewLexiconClassifier()
	default:
		fmt.Fprintln(os.Stderr, "unknown --backend:", *backend)
		os.Exit(2)
	}

	labeler := sentiment.NewLabeler(reviews, classifier, *limit)

	updated, err := labeler.Run(ctx)
	if err != nil {
		slog.Error("[Main] Labeling aborted",
			slog.Int("updated", updated),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Main] Labeling complete", slog.Int("updated", updated))
}
