package store

import (
	"context"
	"fmt"
)

// GroupCount is one row of a grouped count report.
type GroupCount struct {
	Key   string
	Count int64
}

func (s *ReviewStore) CountReviews(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM review`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}

const countByCameraSQL = `
	SELECT COALESCE(camera_model, '(unknown)'), count(*) AS cnt
	  FROM review
	 GROUP BY camera_model
	 ORDER BY cnt DESC, camera_model`

func (s *ReviewStore) CountByCameraModel(ctx context.Context) ([]GroupCount, error) {
	return s.groupCounts(ctx, countByCameraSQL)
}

const countByLabelSQL = `
	SELECT COALESCE(sentiment_label, '(unlabeled)'), count(*) AS cnt
	  FROM review
	 GROUP BY sentiment_label
	 ORDER BY cnt DESC, sentiment_label`

func (s *ReviewStore) CountBySentimentLabel(ctx context.Context) ([]GroupCount, error) {
	return s.groupCounts(ctx, countByLabelSQL)
}

func (s *ReviewStore) groupCounts(ctx context.Context, query string) ([]GroupCount, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query group counts: %w", err)
	}
	defer rows.Close()

	var counts []GroupCount
	for rows.Next() {
		var gc GroupCount
		if err := rows.Scan(&gc.Key, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		counts = append(counts, gc)
	}

	return counts, rows.Err()
}
