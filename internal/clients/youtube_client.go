package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

const (
	YOUTUBE_API_URL = "https://www.googleapis.com/youtube/v3"

	// Provider-imposed page caps.
	SEARCH_PAGE_CAP  = 50
	COMMENT_PAGE_CAP = 100

	// Fixed pause between pages to stay friendly with the quota. Not a
	// backoff schedule; failed calls are not retried here.
	PAGE_FETCH_DELAY = 100 * time.Millisecond
)

// YouTubeClient wraps the YouTube Data API v3 search and commentThreads
// endpoints. It knows nothing about camera semantics and never touches
// storage.
type YouTubeClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

func NewYouTubeClient(httpClient *http.Client, apiKey string) (*YouTubeClient, error) {
	if apiKey == "" {
		return nil, errors.New("[YouTubeClient] API key is missing")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &YouTubeClient{
		Client:  httpClient,
		APIKey:  apiKey,
		BaseURL: YOUTUBE_API_URL,
	}, nil
}

// SearchVideos pages through search results until maxResults video ids are
// collected or the API stops returning a continuation token.
func (yc *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int) ([]string, error) {
	var videoIDs []string
	pageToken := ""

	for len(videoIDs) < maxResults {
		params := url.Values{}
		params.Set("part", "id")
		params.Set("type", "video")
		params.Set("q", query)
		params.Set("relevanceLanguage", "ko")
		params.Set("maxResults", strconv.Itoa(min(SEARCH_PAGE_CAP, maxResults-len(videoIDs))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page models.YouTubeSearchResponse
		if err := yc.getJSON(ctx, "/search", params, &page); err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}

		for _, item := range page.Items {
			if item.ID.VideoID != "" {
				videoIDs = append(videoIDs, item.ID.VideoID)
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken

		time.Sleep(PAGE_FETCH_DELAY)
	}

	return videoIDs, nil
}

// FetchComments collects top-level comments for one video. A failure partway
// through returns whatever was collected together with the error; callers
// treat that as a per-video condition (comments disabled, quota), not a job
// failure.
func (yc *YouTubeClient) FetchComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error) {
	var comments []models.Comment
	pageToken := ""

	for len(comments) < maxComments {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("textFormat", "plainText")
		params.Set("maxResults", strconv.Itoa(min(COMMENT_PAGE_CAP, maxComments-len(comments))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page models.YouTubeCommentThreadsResponse
		if err := yc.getJSON(ctx, "/commentThreads", params, &page); err != nil {
			return comments, fmt.Errorf("commentThreads %q: %w", videoID, err)
		}

		if len(page.Items) == 0 {
			break
		}

		for _, thread := range page.Items {
			snippet := thread.Snippet.TopLevelComment.Snippet
			comment := models.Comment{
				VideoID: videoID,
				Text:    snippet.TextDisplay,
			}
			if ts, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
				comment.PublishedAt = ts
			}

			comments = append(comments, comment)
			if len(comments) >= maxComments {
				break
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken

		time.Sleep(PAGE_FETCH_DELAY)
	}

	return comments, nil
}

func (yc *YouTubeClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", yc.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, yc.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := yc.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("[YouTubeClient] Unexpected response",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}
