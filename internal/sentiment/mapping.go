package sentiment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

var starPattern = regexp.MustCompile(`^([1-5])\s+stars?$`)

const (
	positiveThreshold = 0.6
	negativeThreshold = 0.4
)

// MapRaw translates a backend's raw output into the stored 3-way label and
// score. Two conventions are supported: star-rated labels ("1 star".."5
// stars") map by star count with the reported score stored untouched, and
// binary polarity labels are converted to a positive probability which is
// both thresholded and stored. Anything else is an error and the row stays
// unlabeled for a future run.
func MapRaw(raw RawResult) (string, float64, error) {
	label := strings.ToLower(strings.TrimSpace(raw.Label))

	if m := starPattern.FindStringSubmatch(label); m != nil {
		stars, _ := strconv.Atoi(m[1])
		return starsToLabel(stars), raw.Score, nil
	}

	switch label {
	case "positive", "pos", "label_1":
		return thresholdLabel(raw.Score), raw.Score, nil
	case "negative", "neg", "label_0":
		p := 1 - raw.Score
		return thresholdLabel(p), p, nil
	}

	return "", 0, fmt.Errorf("unrecognized model label %q", raw.Label)
}

func starsToLabel(stars int) string {
	switch {
	case stars <= 2:
		return models.SentimentNegative
	case stars == 3:
		return models.SentimentNeutral
	default:
		return models.SentimentPositive
	}
}

func thresholdLabel(positiveProbability float64) string {
	switch {
	case positiveProbability >= positiveThreshold:
		return models.SentimentPositive
	case positiveProbability <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
