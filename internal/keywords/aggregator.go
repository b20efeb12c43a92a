// Package keywords recomputes the per-(camera, sentiment) token frequency
// tables from scratch on every run.
package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

const DefaultTopK = 30

var nonWordPattern = regexp.MustCompile(`[^0-9A-Za-z가-힣\s]`)

// Tokenize splits review text into countable tokens: everything outside
// hangul/latin/digits becomes whitespace, then one-rune tokens and
// stopwords are dropped.
func Tokenize(text string, stopwords map[string]struct{}) []string {
	if text == "" {
		return nil
	}

	cleaned := nonWordPattern.ReplaceAllString(text, " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

type groupKey struct {
	camera    string
	sentiment string
}

// ComputeStats counts tokens per (camera_model, sentiment_label) group and
// keeps the topK most frequent of each group, stamped with now. Equal counts
// keep first-encountered order; no alphabetic tie-break is applied.
func ComputeStats(reviews []models.AggregationRow, stopwords map[string]struct{}, topK int, now time.Time) []models.KeywordStat {
	if topK <= 0 {
		topK = DefaultTopK
	}

	groups := make(map[groupKey][]string)
	var order []groupKey
	for _, r := range reviews {
		key := groupKey{camera: r.CameraModel, sentiment: r.SentimentLabel}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r.Content)
	}

	var stats []models.KeywordStat
	for _, key := range order {
		counts := make(map[string]int)
		var firstSeen []string
		for _, content := range groups[key] {
			for _, tok := range Tokenize(content, stopwords) {
				if _, ok := counts[tok]; !ok {
					firstSeen = append(firstSeen, tok)
				}
				counts[tok]++
			}
		}

		ranked := make([]string, len(firstSeen))
		copy(ranked, firstSeen)
		sort.SliceStable(ranked, func(i, j int) bool {
			return counts[ranked[i]] > counts[ranked[j]]
		})

		limit := min(topK, len(ranked))
		for _, keyword := range ranked[:limit] {
			stats = append(stats, models.KeywordStat{
				CameraModel:    key.camera,
				SentimentLabel: key.sentiment,
				Keyword:        keyword,
				Freq:           counts[keyword],
				UpdatedAt:      now,
			})
		}
	}

	return stats
}

// Source is the slice of the review store the aggregation reads and writes.
type Source interface {
	SelectForAggregation(ctx context.Context) ([]models.AggregationRow, error)
	ReplaceKeywordStats(ctx context.Context, stats []models.KeywordStat) error
}

type Aggregator struct {
	store     Source
	stopwords map[string]struct{}
	topK      int
}

func NewAggregator(store Source, stopwords map[string]struct{}, topK int) *Aggregator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Aggregator{store: store, stopwords: stopwords, topK: topK}
}

// Run recomputes the whole keyword table and returns the number of rows it
// now holds. With no qualifying reviews the existing table is left alone.
func (a *Aggregator) Run(ctx context.Context) (int, error) {
	reviews, err := a.store.SelectForAggregation(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to select reviews for aggregation: %w", err)
	}

	if len(reviews) == 0 {
		slog.Warn("[KeywordAggregator] No qualifying reviews, keeping previous stats")
		return 0, nil
	}

	slog.Info("[KeywordAggregator] Aggregating reviews",
		slog.Int("reviews", len(reviews)),
		slog.Int("top_k", a.topK))

	stats := ComputeStats(reviews, a.stopwords, a.topK, time.Now().UTC())

	if err := a.store.ReplaceKeywordStats(ctx, stats); err != nil {
		return 0, fmt.Errorf("failed to replace keyword stats: %w", err)
	}

	return len(stats), nil
}
