package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*YouTubeClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	yc, err := NewYouTubeClient(ts.Client(), "test-key")
	if err != nil {
		t.Fatalf("NewYouTubeClient: %v", err)
	}
	yc.BaseURL = ts.URL
	return yc, ts
}

func TestNewYouTubeClientRequiresKey(t *testing.T) {
	if _, err := NewYouTubeClient(nil, ""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSearchVideosPaginates(t *testing.T) {
	var pages []string
	yc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("missing api key parameter")
		}
		pages = append(pages, r.URL.Query().Get("pageToken"))

		resp := map[string]any{
			"items": []map[string]any{
				{"id": map[string]any{"videoId": "vid-a"}},
				{"id": map[string]any{"videoId": "vid-b"}},
			},
		}
		if len(pages) == 1 {
			resp["nextPageToken"] = "page-2"
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	ids, err := yc.SearchVideos(context.Background(), "카메라 리뷰", 4)
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}

	if len(ids) != 4 {
		t.Errorf("got %d ids, want 4", len(ids))
	}
	if len(pages) != 2 {
		t.Fatalf("got %d page requests, want 2", len(pages))
	}
	if pages[0] != "" || pages[1] != "page-2" {
		t.Errorf("page tokens = %v", pages)
	}
}

func TestSearchVideosStopsWithoutToken(t *testing.T) {
	calls := 0
	yc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": map[string]any{"videoId": "only"}}},
		})
	})

	ids, err := yc.SearchVideos(context.Background(), "q", 50)
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}
	if len(ids) != 1 || calls != 1 {
		t.Errorf("ids=%d calls=%d, want 1/1", len(ids), calls)
	}
}

func TestFetchCommentsCollectsSnippets(t *testing.T) {
	yc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commentThreads" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("textFormat") != "plainText" {
			t.Error("expected textFormat=plainText")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{
					"textDisplay": "노이즈가 심해요",
					"publishedAt": "2025-05-01T09:30:00Z",
				}}}},
				{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{
					"textDisplay": "색감 좋네요",
				}}}},
			},
		})
	})

	comments, err := yc.FetchComments(context.Background(), "vid-1", 10)
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Text != "노이즈가 심해요" {
		t.Errorf("text = %q", comments[0].Text)
	}
	if comments[0].PublishedAt.IsZero() {
		t.Error("expected parsed publishedAt")
	}
	if !comments[1].PublishedAt.IsZero() {
		t.Error("missing publishedAt must stay zero")
	}
	if comments[0].VideoID != "vid-1" {
		t.Errorf("video id = %q", comments[0].VideoID)
	}
}

func TestFetchCommentsPartialOnError(t *testing.T) {
	calls := 0
	yc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{
						"textDisplay": "첫 페이지 댓글",
					}}}},
				},
				"nextPageToken": "more",
			})
			return
		}
		// Comments disabled mid-way.
		w.WriteHeader(http.StatusForbidden)
	})

	comments, err := yc.FetchComments(context.Background(), "vid-x", 10)
	if err == nil {
		t.Fatal("expected error from second page")
	}
	if len(comments) != 1 {
		t.Errorf("got %d comments, want the 1 collected before the failure", len(comments))
	}
}

func TestFetchCommentsRespectsCap(t *testing.T) {
	yc, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("maxResults"); got != "2" {
			t.Errorf("maxResults = %q, want 2", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{"textDisplay": "a1"}}}},
				{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{"textDisplay": "a2"}}}},
				{"snippet": map[string]any{"topLevelComment": map[string]any{"snippet": map[string]any{"textDisplay": "a3"}}}},
			},
			"nextPageToken": "unused",
		})
	})

	comments, err := yc.FetchComments(context.Background(), "vid-1", 2)
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("got %d comments, want 2", len(comments))
	}
}
