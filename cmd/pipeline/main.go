package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GreatHerb/camera-review-analyzer/config"
	"github.com/GreatHerb/camera-review-analyzer/internal/clients"
	"github.com/GreatHerb/camera-review-analyzer/internal/crawler"
	"github.com/GreatHerb/camera-review-analyzer/internal/filter"
	"github.com/GreatHerb/camera-review-analyzer/internal/keywords"
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/sentiment"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

// One-shot pipeline: batch crawl, label the new backlog, recompute keyword
// stats, then print a summary of the store.
func main() {
	jobsPath := flag.String("jobs", "camera_list.json", "batch job definition file")
	backend := flag.String("backend", "hugot", "classifier backend: hugot or lexicon")
	topK := flag.Int("top-k", keywords.DefaultTopK, "keywords kept per (camera, sentiment) group")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("[Pipeline] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jobs, err := crawler.LoadJobs(*jobsPath)
	if err != nil {
		slog.Error("[Pipeline] Failed to load jobs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pg, err := clients.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("[Pipeline] Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pg.Close()

	reviews := store.NewReviewStore(pg.DB)
	if err := reviews.EnsureSchema(ctx); err != nil {
		slog.Error("[Pipeline] Failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	yt, err := clients.NewYouTubeClient(nil, cfg.APIKey)
	if err != nil {
		slog.Error("[Pipeline] Failed to create YouTube client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	vocab := filter.DefaultVocabulary()
	if cfg.VocabPath != "" {
		vocab, err = filter.LoadVocabulary(cfg.VocabPath)
		if err != nil {
			slog.Warn("[Pipeline] Falling back to built-in vocabulary", slog.String("error", err.Error()))
		}
	}

	var seen crawler.SeenCache
	if cfg.ValkeyAddr != "" {
		vk, err := clients.NewValkeyClient(clients.ValkeyOptions{
			Addr:     cfg.ValkeyAddr,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Pipeline] Valkey unavailable, crawling without seen-video cache",
				slog.String("error", err.Error()))
		} else {
			defer vk.Close()
			seen = vk
		}
	}

	// 1) Batch crawl.
	orchestrator := crawler.NewOrchestrator(yt, filter.New(vocab), reviews, seen)
	for _, job := range jobs {
		if _, err := orchestrator.Run(ctx, job); err != nil {
			slog.Error("[Pipeline] Crawl job failed, continuing",
				slog.String("camera", job.CameraModel),
				slog.String("error", err.Error()))
		}
	}

	// 2) Label the backlog.
	var classifier sentiment.Classifier
	if *backend == "lexicon" {
		classifier = sentiment.NewLexiconClassifier()
	} else {
		hc, err := sentiment.NewHugotClassifier(cfg.ModelDir, cfg.Model)
		if err != nil {
			slog.Error("[Pipeline] Failed to initialize classifier", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer hc.Close()
		classifier = hc
	}

	labeler := sentiment.NewLabeler(reviews, classifier, sentiment.DefaultBatchSize)
	updated, err := labeler.Run(ctx)
	if err != nil {
		slog.Error("[Pipeline] Labeling aborted",
			slog.Int("updated", updated),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("[Pipeline] Labeling complete", slog.Int("updated", updated))

	// 3) Recompute keyword stats.
	aggregator := keywords.NewAggregator(reviews, vocab.StopwordSet(), *topK)
	if rows, err := aggregator.Run(ctx); err != nil {
		slog.Error("[Pipeline] Aggregation failed", slog.String("error", err.Error()))
	} else {
		slog.Info("[Pipeline] Keyword stats updated", slog.Int("rows", rows))
	}

	// 4) Store summary.
	printSummary(ctx, reviews)
}

func printSummary(ctx context.Context, reviews *store.ReviewStore) {
	total, err := reviews.CountReviews(ctx)
	if err != nil {
		slog.Warn("[Pipeline] Failed to count reviews", slog.String("error", err.Error()))
		return
	}
	slog.Info("[Pipeline] Review summary", slog.Int64("total", total))

	byCamera, err := reviews.CountByCameraModel(ctx)
	if err != nil {
		slog.Warn("[Pipeline] Failed to count by camera", slog.String("error", err.Error()))
	}
	for _, gc := range byCamera {
		slog.Info("[Pipeline] Reviews by camera",
			slog.String("camera", gc.Key),
			slog.Int64("count", gc.Count))
	}

	byLabel, err := reviews.CountBySentimentLabel(ctx)
	if err != nil {
		slog.Warn("[Pipeline] Failed to count by label", slog.String("error", err.Error()))
	}
	for _, gc := range byLabel {
		slog.Info("[Pipeline] Reviews by sentiment",
			slog.String("label", gc.Key),
			slog.Int64("count", gc.Count))
	}
}
