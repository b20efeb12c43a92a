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
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

func main() {
	jobsPath := flag.String("jobs", "camera_list.json", "batch job definition file")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jobs, err := crawler.LoadJobs(*jobsPath)
	if err != nil {
		slog.Error("[Main] Failed to load jobs", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(jobs) == 0 {
		slog.Warn("[Main] No usable jobs in file", slog.String("path", *jobsPath))
		return
	}

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

	yt, err := clients.NewYouTubeClient(nil, cfg.APIKey)
	if err != nil {
		slog.Error("[Main] Failed to create YouTube client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	vocab := filter.DefaultVocabulary()
	if cfg.VocabPath != "" {
		vocab, err = filter.LoadVocabulary(cfg.VocabPath)
		if err != nil {
			slog.Warn("[Main] Falling back to built-in vocabulary", slog.String("error", err.Error()))
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
			slog.Warn("[Main] Valkey unavailable, crawling without seen-video cache",
				slog.String("error", err.Error()))
		} else {
			defer vk.Close()
			seen = vk
		}
	}

	orchestrator := crawler.NewOrchestrator(yt, filter.New(vocab), reviews, seen)

	slog.Info("[Main] Starting batch crawl", slog.Int("jobs", len(jobs)))

	totalInserted := 0
	for _, job := range jobs {
		counters, err := orchestrator.Run(ctx, job)
		if err != nil {
			slog.Error("[Main] Job failed, continuing with next",
				slog.String("camera", job.CameraModel),
				slog.String("error", err.Error()))
			continue
		}
		totalInserted += counters.Inserted
	}

	slog.Info("[Main] Batch crawl complete", slog.Int("inserted", totalInserted))
}
