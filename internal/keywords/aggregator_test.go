package keywords

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

var testStopwords = map[string]struct{}{
	"카메라": {},
	"리뷰":  {},
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"punctuation stripped", "노이즈가... 심해요!!", []string{"노이즈가", "심해요"}},
		{"single rune dropped", "아 노이즈 b 심함", []string{"노이즈", "심함"}},
		{"stopwords dropped", "카메라 리뷰 셔터 소리", []string{"셔터", "소리"}},
		{"mixed scripts kept", "ISO 6400에서 noise 적음", []string{"ISO", "6400에서", "noise", "적음"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.in, testStopwords); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeStatsGroupsAndCounts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reviews := []models.AggregationRow{
		{CameraModel: "X", SentimentLabel: "negative", Content: "노이즈 심해요"},
		{CameraModel: "X", SentimentLabel: "negative", Content: "저조도 노이즈 때문에 별로"},
		{CameraModel: "X", SentimentLabel: "positive", Content: "색감 만족 셔터 만족"},
	}

	stats := ComputeStats(reviews, testStopwords, 5, now)

	var negNoise *models.KeywordStat
	for i := range stats {
		if stats[i].SentimentLabel == "negative" && stats[i].Keyword == "노이즈" {
			negNoise = &stats[i]
		}
		if stats[i].SentimentLabel == "positive" && stats[i].Keyword == "노이즈" {
			t.Error("positive group must not contain 노이즈")
		}
		if stats[i].UpdatedAt != now {
			t.Errorf("UpdatedAt = %v, want %v", stats[i].UpdatedAt, now)
		}
	}

	if negNoise == nil {
		t.Fatal("negative group is missing 노이즈")
	}
	if negNoise.Freq != 2 {
		t.Errorf("노이즈 freq = %d, want 2", negNoise.Freq)
	}
	if negNoise.CameraModel != "X" {
		t.Errorf("camera = %q, want X", negNoise.CameraModel)
	}

	var posMultiple *models.KeywordStat
	for i := range stats {
		if stats[i].SentimentLabel == "positive" && stats[i].Keyword == "만족" {
			posMultiple = &stats[i]
		}
	}
	if posMultiple == nil || posMultiple.Freq != 2 {
		t.Errorf("positive 만족 freq = %+v, want 2", posMultiple)
	}
}

func TestComputeStatsTopKTruncation(t *testing.T) {
	reviews := []models.AggregationRow{
		{CameraModel: "X", SentimentLabel: "positive", Content: "하나 둘도 셋도 넷도 다섯"},
	}

	stats := ComputeStats(reviews, map[string]struct{}{}, 3, time.Now())
	if len(stats) != 3 {
		t.Fatalf("len(stats) = %d, want 3", len(stats))
	}
}

func TestComputeStatsTieOrderIsFirstEncountered(t *testing.T) {
	// Every token occurs once; ranking must preserve encounter order, not
	// sort alphabetically.
	reviews := []models.AggregationRow{
		{CameraModel: "X", SentimentLabel: "positive", Content: "셔터 바디 렌즈"},
	}

	stats := ComputeStats(reviews, map[string]struct{}{}, 5, time.Now())
	got := []string{stats[0].Keyword, stats[1].Keyword, stats[2].Keyword}
	want := []string{"셔터", "바디", "렌즈"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tie order = %v, want %v", got, want)
	}
}

func TestComputeStatsDeterministicGroupOrder(t *testing.T) {
	reviews := []models.AggregationRow{
		{CameraModel: "B", SentimentLabel: "positive", Content: "색감 좋음"},
		{CameraModel: "A", SentimentLabel: "negative", Content: "노이즈 심함"},
	}

	first := ComputeStats(reviews, map[string]struct{}{}, 5, time.Time{})
	for i := 0; i < 5; i++ {
		again := ComputeStats(reviews, map[string]struct{}{}, 5, time.Time{})
		if !reflect.DeepEqual(first, again) {
			t.Fatal("ComputeStats output order is not deterministic")
		}
	}
}

type fakeAggSource struct {
	reviews  []models.AggregationRow
	replaced [][]models.KeywordStat
	selErr   error
}

func (f *fakeAggSource) SelectForAggregation(_ context.Context) ([]models.AggregationRow, error) {
	return f.reviews, f.selErr
}

func (f *fakeAggSource) ReplaceKeywordStats(_ context.Context, stats []models.KeywordStat) error {
	f.replaced = append(f.replaced, stats)
	return nil
}

func TestAggregatorRun(t *testing.T) {
	src := &fakeAggSource{reviews: []models.AggregationRow{
		{CameraModel: "X", SentimentLabel: "negative", Content: "노이즈 심해요"},
	}}

	rows, err := NewAggregator(src, testStopwords, 5).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rows == 0 || len(src.replaced) != 1 {
		t.Fatalf("expected one replacement of %d rows, got %v", rows, src.replaced)
	}
}

func TestAggregatorKeepsStatsWhenNoReviews(t *testing.T) {
	src := &fakeAggSource{}

	rows, err := NewAggregator(src, testStopwords, 5).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}
	if len(src.replaced) != 0 {
		t.Error("table must not be touched when there is nothing to aggregate")
	}
}

func TestAggregatorPropagatesSelectError(t *testing.T) {
	src := &fakeAggSource{selErr: errors.New("db down")}

	if _, err := NewAggregator(src, testStopwords, 5).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
