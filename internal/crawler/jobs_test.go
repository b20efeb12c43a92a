package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

func writeJobFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camera_list.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJobs(t *testing.T) {
	path := writeJobFile(t, `{
		"cameras": [
			{"camera": "Canon EOS R6 Mark II", "query": "캐논 R6 마크2 리뷰", "max_videos": 5, "comments_per_video": 80},
			{"camera": "Sony A7 IV", "query": "소니 A7M4 리뷰"},
			{"camera": "", "query": "검색어만 있는 항목"}
		]
	}`)

	jobs, err := LoadJobs(path)
	if err != nil {
		t.Fatalf("LoadJobs: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2 (incomplete entry skipped)", len(jobs))
	}

	if jobs[0].MaxVideos != 5 || jobs[0].CommentsPerVideo != 80 {
		t.Errorf("explicit limits not honored: %+v", jobs[0])
	}
	if jobs[1].MaxVideos != models.DefaultMaxVideos || jobs[1].CommentsPerVideo != models.DefaultCommentsPerVideo {
		t.Errorf("defaults not applied: %+v", jobs[1])
	}
}

func TestLoadJobsMissingFile(t *testing.T) {
	if _, err := LoadJobs(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadJobsMalformed(t *testing.T) {
	path := writeJobFile(t, `{"cameras": [`)
	if _, err := LoadJobs(path); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
