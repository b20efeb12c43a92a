package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

const (
	// MaxInputChars guards the model's input-length limit. Longer comments
	// are truncated, not skipped; losing the tail is intentional.
	MaxInputChars = 1000

	DefaultBatchSize = 200
)

// Backlog is the slice of the review store the labeler needs.
type Backlog interface {
	SelectUnlabeled(ctx context.Context, limit int) ([]models.UnlabeledReview, error)
	UpdateSentiment(ctx context.Context, id int64, label string, score float64, modelName string) error
}

type Labeler struct {
	store      Backlog
	classifier Classifier
	batchSize  int
}

func NewLabeler(store Backlog, classifier Classifier, batchSize int) *Labeler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Labeler{store: store, classifier: classifier, batchSize: batchSize}
}

// Run drains the unlabeled backlog one bounded page at a time and returns
// the number of rows updated. Rows updated before an interruption keep
// their model marker and are skipped by the next run; a row whose
// classification fails is logged and left for a future run. Re-invoking the
// whole job is the only retry mechanism.
func (l *Labeler) Run(ctx context.Context) (int, error) {
	modelName := l.classifier.ModelName()
	updated := 0

	for {
		backlog, err := l.store.SelectUnlabeled(ctx, l.batchSize)
		if err != nil {
			return updated, fmt.Errorf("failed to pull unlabeled backlog: %w", err)
		}
		if len(backlog) == 0 {
			break
		}

		slog.Info("[Labeler] Labeling batch",
			slog.Int("rows", len(backlog)),
			slog.String("model", modelName))

		progress := 0
		for _, review := range backlog {
			label, score, err := l.labelOne(ctx, review)
			if err != nil {
				slog.Warn("[Labeler] Classification failed",
					slog.Int64("id", review.ID),
					slog.String("error", err.Error()))
				continue
			}

			if err := l.store.UpdateSentiment(ctx, review.ID, label, score, modelName); err != nil {
				slog.Warn("[Labeler] Update failed",
					slog.Int64("id", review.ID),
					slog.String("error", err.Error()))
				continue
			}
			updated++
			progress++
		}

		// Skipped rows stay unlabeled and would come straight back on the
		// next pull; a page with zero progress means stop, not spin.
		if progress == 0 {
			slog.Warn("[Labeler] No progress in batch, stopping",
				slog.Int("rows", len(backlog)))
			break
		}
	}

	return updated, nil
}

func (l *Labeler) labelOne(ctx context.Context, review models.UnlabeledReview) (string, float64, error) {
	text := review.Content
	if runes := []rune(text); len(runes) > MaxInputChars {
		text = string(runes[:MaxInputChars])
	}

	raw, err := l.classifier.Classify(ctx, text)
	if err != nil {
		return "", 0, err
	}

	label, score, err := MapRaw(raw)
	if err != nil {
		return "", 0, err
	}

	return label, math.Round(score*1000) / 1000, nil
}
