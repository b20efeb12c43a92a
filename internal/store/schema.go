package store

import (
	"context"
	"fmt"
)

const reviewDDL = `
CREATE TABLE IF NOT EXISTS review (
    id              BIGSERIAL PRIMARY KEY,
    source          TEXT NOT NULL,
    rating          NUMERIC,
    content         TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    camera_model    TEXT,
    sentiment_label TEXT,
    sentiment_score NUMERIC,
    sentiment_model TEXT,
    CONSTRAINT uq_review_source_content UNIQUE (source, content)
)`

const keywordStatsDDL = `
CREATE TABLE IF NOT EXISTS review_keyword_stats (
    camera_model    TEXT NOT NULL,
    sentiment_label TEXT NOT NULL,
    keyword         TEXT NOT NULL,
    freq            INTEGER NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the owned tables when they do not exist yet.
func (s *ReviewStore) EnsureSchema(ctx context.Context) error {
	for _, ddl := range []string{reviewDDL, keywordStatsDDL} {
		if _, err := s.db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
