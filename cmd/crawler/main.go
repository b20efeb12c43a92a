package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/GreatHerb/camera-review-analyzer/config"
	"github.com/GreatHerb/camera-review-analyzer/internal/clients"
	"github.com/GreatHerb/camera-review-analyzer/internal/crawler"
	"github.com/GreatHerb/camera-review-analyzer/internal/filter"
	"github.com/GreatHerb/camera-review-analyzer/internal/logging"
	"github.com/GreatHerb/camera-review-analyzer/internal/models"
	"github.com/GreatHerb/camera-review-analyzer/internal/store"
)

func main() {
	query := flag.String("query", "", "video search query")
	camera := flag.String("camera", "", "camera model stored with harvested reviews")
	maxVideos := flag.Int("max-videos", models.DefaultMaxVideos, "maximum videos to process")
	commentsPerVideo := flag.Int("comments-per-video", models.DefaultCommentsPerVideo, "maximum comments per video")
	flag.Parse()

	if *query == "" || *camera == "" {
		fmt.Fprintln(os.Stderr, "missing --query or --camera")
		os.Exit(2)
	}

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

	job := models.CameraJob{
		Query:            *query,
		CameraModel:      *camera,
		MaxVideos:        *maxVideos,
		CommentsPerVideo: *commentsPerVideo,
	}

	counters, err := orchestrator.Run(ctx, job)
	if err != nil {
		slog.Error("[Main] Crawl job failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Main] Crawl complete",
		slog.Int("videos", counters.VideosFound),
		slog.Int("comments", counters.CommentsSeen),
		slog.Int("inserted", counters.Inserted))
}
