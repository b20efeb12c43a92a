package models

import "time"

type YouTubeSearchResponse struct {
	Items         []YouTubeSearchItem `json:"items"`
	NextPageToken string              `json:"nextPageToken"`
}

type YouTubeSearchItem struct {
	ID YouTubeSearchItemID `json:"id"`
}

type YouTubeSearchItemID struct {
	VideoID string `json:"videoId"`
}

type YouTubeCommentThreadsResponse struct {
	Items         []YouTubeCommentThread `json:"items"`
	NextPageToken string                 `json:"nextPageToken"`
}

type YouTubeCommentThread struct {
	Snippet YouTubeCommentThreadSnippet `json:"snippet"`
}

type YouTubeCommentThreadSnippet struct {
	TopLevelComment YouTubeTopLevelComment `json:"topLevelComment"`
}

type YouTubeTopLevelComment struct {
	Snippet YouTubeCommentSnippet `json:"snippet"`
}

type YouTubeCommentSnippet struct {
	TextDisplay string `json:"textDisplay"`
	PublishedAt string `json:"publishedAt"`
}

// Comment is one harvested top-level comment. PublishedAt stays zero when
// the source did not report an authorship time.
type Comment struct {
	VideoID     string
	Text        string
	PublishedAt time.Time
}
