// Package store is the persistence boundary: deduplicated review inserts,
// backlog selection, sentiment updates and the derived keyword table.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

type ReviewStore struct {
	db *pgxpool.Pool
}

func NewReviewStore(db *pgxpool.Pool) *ReviewStore {
	return &ReviewStore{db: db}
}

const insertCandidateSQL = `
	INSERT INTO review (source, rating, content, created_at, camera_model)
	VALUES ($1, NULL, $2, $3, $4)
	ON CONFLICT (source, content) DO NOTHING`

// InsertCandidates writes one filtered batch inside a single transaction.
// Duplicates on (source, content) are silently skipped and not counted.
// A per-row failure is logged and the remaining rows are still attempted;
// if the transaction can no longer commit the whole batch is lost, which is
// the accepted worst case.
func (s *ReviewStore) InsertCandidates(ctx context.Context, rows []models.ReviewCandidate, cameraModel string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin insert batch: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, row := range rows {
		tag, err := tx.Exec(ctx, insertCandidateSQL, row.Source, row.Content, row.CreatedAt, cameraModel)
		if err != nil {
			slog.Warn("[ReviewStore] Insert failed",
				slog.String("source", row.Source),
				slog.String("error", err.Error()))
			continue
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit insert batch: %w", err)
	}

	return inserted, nil
}

const seedReviewSQL = `
	INSERT INTO review (source, rating, content, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (source, content) DO NOTHING`

// SeedSamples loads hand-written sample rows, rating included. Used by the
// one-off seed driver only.
func (s *ReviewStore) SeedSamples(ctx context.Context, samples []models.Review) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed batch: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, r := range samples {
		tag, err := tx.Exec(ctx, seedReviewSQL, r.Source, r.Rating, r.Content, r.CreatedAt)
		if err != nil {
			slog.Warn("[ReviewStore] Seed insert failed", slog.String("error", err.Error()))
			continue
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed batch: %w", err)
	}

	return inserted, nil
}

const selectUnlabeledSQL = `
	SELECT id, content
	  FROM review
	 WHERE content IS NOT NULL
	   AND TRIM(content) <> ''
	   AND (
	        sentiment_label IS NULL OR sentiment_label = ''
	        OR sentiment_model IS NULL OR sentiment_model = ''
	   )
	 ORDER BY id ASC
	 LIMIT $1`

// SelectUnlabeled returns the next bounded page of the labeling backlog,
// ordered by id so interrupted runs resume deterministically.
func (s *ReviewStore) SelectUnlabeled(ctx context.Context, limit int) ([]models.UnlabeledReview, error) {
	rows, err := s.db.Query(ctx, selectUnlabeledSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select unlabeled reviews: %w", err)
	}
	defer rows.Close()

	var backlog []models.UnlabeledReview
	for rows.Next() {
		var r models.UnlabeledReview
		if err := rows.Scan(&r.ID, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to scan unlabeled review: %w", err)
		}
		backlog = append(backlog, r)
	}

	return backlog, rows.Err()
}

const updateSentimentSQL = `
	UPDATE review
	   SET sentiment_label = $1,
	       sentiment_score = $2,
	       sentiment_model = $3
	 WHERE id = $4`

func (s *ReviewStore) UpdateSentiment(ctx context.Context, id int64, label string, score float64, modelName string) error {
	if _, err := s.db.Exec(ctx, updateSentimentSQL, label, score, modelName, id); err != nil {
		return fmt.Errorf("failed to update sentiment for review %d: %w", id, err)
	}
	return nil
}

const selectForAggregationSQL = `
	SELECT camera_model, sentiment_label, content
	  FROM review
	 WHERE sentiment_label IS NOT NULL
	   AND TRIM(sentiment_label) <> ''
	   AND camera_model IS NOT NULL
	   AND TRIM(camera_model) <> ''
	   AND content IS NOT NULL
	   AND TRIM(content) <> ''`

// SelectForAggregation returns every review qualified for keyword counting.
func (s *ReviewStore) SelectForAggregation(ctx context.Context) ([]models.AggregationRow, error) {
	rows, err := s.db.Query(ctx, selectForAggregationSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to select reviews for aggregation: %w", err)
	}
	defer rows.Close()

	var reviews []models.AggregationRow
	for rows.Next() {
		var r models.AggregationRow
		if err := rows.Scan(&r.CameraModel, &r.SentimentLabel, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to scan aggregation row: %w", err)
		}
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}

// ReplaceKeywordStats clears the keyword table and bulk-loads the new rows
// in one transaction, so readers never observe a half-updated aggregate.
func (s *ReviewStore) ReplaceKeywordStats(ctx context.Context, stats []models.KeywordStat) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin keyword stats replacement: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM review_keyword_stats`); err != nil {
		return fmt.Errorf("failed to clear keyword stats: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"review_keyword_stats"},
		[]string{"camera_model", "sentiment_label", "keyword", "freq", "updated_at"},
		pgx.CopyFromSlice(len(stats), func(i int) ([]any, error) {
			st := stats[i]
			return []any{st.CameraModel, st.SentimentLabel, st.Keyword, st.Freq, st.UpdatedAt}, nil
		}))
	if err != nil {
		return fmt.Errorf("failed to bulk insert keyword stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit keyword stats replacement: %w", err)
	}

	return nil
}
