// Package crawler drives one harvesting job end to end: video search,
// comment collection, normalization, noise filtering and deduplicated
// persistence.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
	"github.com/GreatHerb/camera-review-analyzer/internal/normalize"
)

// Source is the narrow contract toward the video platform.
type Source interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]string, error)
	FetchComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error)
}

// CandidateStore persists filtered candidates with dedup semantics.
type CandidateStore interface {
	InsertCandidates(ctx context.Context, rows []models.ReviewCandidate, cameraModel string) (int, error)
}

// NoiseFilter decides whether a normalized comment is worth keeping.
type NoiseFilter interface {
	IsNoise(text string) bool
}

// SeenCache remembers videos already harvested; a nil cache disables the
// check and every found video is fetched.
type SeenCache interface {
	VideoSeen(ctx context.Context, videoID string) bool
	MarkVideoSeen(ctx context.Context, videoID string)
}

// interVideoDelay eases up on the comment API between videos.
const interVideoDelay = 200 * time.Millisecond

// Counters is the coarse per-job progress report.
type Counters struct {
	VideosFound  int
	CommentsSeen int
	Inserted     int
}

type Orchestrator struct {
	source Source
	filter NoiseFilter
	store  CandidateStore
	seen   SeenCache
}

func NewOrchestrator(source Source, filter NoiseFilter, store CandidateStore, seen SeenCache) *Orchestrator {
	return &Orchestrator{source: source, filter: filter, store: store, seen: seen}
}

// Run harvests one (query, camera) job. Each video's batch is inserted in
// its own transaction; per-video failures are logged and skipped, so only
// the search call itself can fail the job.
func (o *Orchestrator) Run(ctx context.Context, job models.CameraJob) (Counters, error) {
	job.ApplyDefaults()

	slog.Info("[Crawler] Starting job",
		slog.String("query", job.Query),
		slog.String("camera", job.CameraModel),
		slog.Int("max_videos", job.MaxVideos),
		slog.Int("comments_per_video", job.CommentsPerVideo))

	videoIDs, err := o.source.SearchVideos(ctx, job.Query, job.MaxVideos)
	if err != nil {
		return Counters{}, fmt.Errorf("video search failed: %w", err)
	}

	counters := Counters{VideosFound: len(videoIDs)}

	for i, videoID := range videoIDs {
		if i > 0 {
			time.Sleep(interVideoDelay)
		}

		if o.seen != nil && o.seen.VideoSeen(ctx, videoID) {
			slog.Debug("[Crawler] Skipping already harvested video",
				slog.String("video_id", videoID))
			continue
		}

		comments, err := o.source.FetchComments(ctx, videoID, job.CommentsPerVideo)
		if err != nil {
			slog.Warn("[Crawler] Comment fetch incomplete",
				slog.String("video_id", videoID),
				slog.String("error", err.Error()))
		}
		counters.CommentsSeen += len(comments)

		rows := o.buildCandidates(videoID, comments)
		if len(rows) > 0 {
			inserted, err := o.store.InsertCandidates(ctx, rows, job.CameraModel)
			if err != nil {
				slog.Warn("[Crawler] Insert batch failed",
					slog.String("video_id", videoID),
					slog.String("error", err.Error()))
				continue
			}
			counters.Inserted += inserted
		}

		if o.seen != nil {
			o.seen.MarkVideoSeen(ctx, videoID)
		}
	}

	slog.Info("[Crawler] Job finished",
		slog.String("camera", job.CameraModel),
		slog.Int("videos", counters.VideosFound),
		slog.Int("comments", counters.CommentsSeen),
		slog.Int("inserted", counters.Inserted))

	return counters, nil
}

func (o *Orchestrator) buildCandidates(videoID string, comments []models.Comment) []models.ReviewCandidate {
	var rows []models.ReviewCandidate
	for _, comment := range comments {
		text := normalize.Clean(comment.Text)
		if text == "" || o.filter.IsNoise(text) {
			continue
		}

		createdAt := comment.PublishedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		rows = append(rows, models.ReviewCandidate{
			Source:    "youtube:" + videoID,
			Content:   text,
			CreatedAt: createdAt,
		})
	}
	return rows
}
