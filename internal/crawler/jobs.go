package crawler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/GreatHerb/camera-review-analyzer/internal/models"
)

type jobFile struct {
	Cameras []models.CameraJob `json:"cameras"`
}

// LoadJobs reads a camera_list.json batch definition. Entries missing either
// the camera model or the query are skipped with a warning; the rest get
// their defaults applied.
func LoadJobs(path string) ([]models.CameraJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var file jobFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	var jobs []models.CameraJob
	for _, job := range file.Cameras {
		if job.CameraModel == "" || job.Query == "" {
			slog.Warn("[Crawler] Skipping job entry without camera and query",
				slog.String("camera", job.CameraModel),
				slog.String("query", job.Query))
			continue
		}
		job.ApplyDefaults()
		jobs = append(jobs, job)
	}

	return jobs, nil
}
