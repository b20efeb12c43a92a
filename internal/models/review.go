package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Review is one stored text unit. source+content form the natural key;
// only the three sentiment fields are mutable after insert.
type Review struct {
	ID             int64
	Source         string
	Rating         *float64
	Content        string
	CreatedAt      time.Time
	CameraModel    string
	SentimentLabel string
	SentimentScore float64
	SentimentModel string
}

// ReviewCandidate is one normalized, filter-surviving comment headed for storage.
type ReviewCandidate struct {
	Source    string
	Content   string
	CreatedAt time.Time
}

// UnlabeledReview is one backlog row awaiting a sentiment label.
type UnlabeledReview struct {
	ID      int64
	Content string
}

// AggregationRow is the slice of a review the keyword aggregation reads.
type AggregationRow struct {
	CameraModel    string
	SentimentLabel string
	Content        string
}

// KeywordStat is one row of the fully-replaceable keyword frequency table.
type KeywordStat struct {
	CameraModel    string
	SentimentLabel string
	Keyword        string
	Freq           int
	UpdatedAt      time.Time
}
