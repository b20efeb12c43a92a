// Package sentiment labels stored reviews with a 3-way sentiment and a
// confidence score, one bounded backlog page at a time.
package sentiment

import "context"

// RawResult is the untranslated label/score pair a classification backend
// reports for one text.
type RawResult struct {
	Label string
	Score float64
}

// Classifier is the narrow contract toward a text-classification model.
// Implementations are synchronous and stateless per call; the model identity
// string is persisted with every result for traceability.
type Classifier interface {
	Classify(ctx context.Context, text string) (RawResult, error)
	ModelName() string
}
