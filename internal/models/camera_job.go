package models

const (
	DefaultMaxVideos        = 3
	DefaultCommentsPerVideo = 40
)

// CameraJob describes one (query, camera) harvesting run. The json tags
// match the camera_list.json batch file format.
type CameraJob struct {
	Query            string `json:"query"`
	CameraModel      string `json:"camera"`
	MaxVideos        int    `json:"max_videos"`
	CommentsPerVideo int    `json:"comments_per_video"`
}

func (j *CameraJob) ApplyDefaults() {
	if j.MaxVideos <= 0 {
		j.MaxVideos = DefaultMaxVideos
	}
	if j.CommentsPerVideo <= 0 {
		j.CommentsPerVideo = DefaultCommentsPerVideo
	}
}
