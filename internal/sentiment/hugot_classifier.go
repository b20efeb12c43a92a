package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

// DefaultModel is the multilingual star-rating sentiment model the backlog
// is labeled with unless a different one is configured.
const DefaultModel = "nlptown/bert-base-multilingual-uncased-sentiment"

// HugotClassifier runs a HuggingFace text-classification model locally
// through an ONNX runtime session.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	model    string
}

// NewHugotClassifier downloads the model on first use and prepares the
// classification pipeline around it. Close must be called to release the
// runtime session.
func NewHugotClassifier(modelDir, model string) (*HugotClassifier, error) {
	if model == "" {
		model = DefaultModel
	}

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(model, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[HugotClassifier] Model not found, downloading...",
			slog.String("model", model))
		downloaded, err := hugot.DownloadModel(model, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download model %s: %w", model, err)
		}
		modelPath = downloaded
		slog.Info("[HugotClassifier] Model downloaded successfully",
			slog.String("path", modelPath))
	} else {
		slog.Info("[HugotClassifier] Using existing model",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	return &HugotClassifier{
		session:  session,
		pipeline: pipeline,
		model:    model,
	}, nil
}

func (c *HugotClassifier) Classify(ctx context.Context, text string) (RawResult, error) {
	output, err := c.pipeline.RunPipeline([]string{text})
	if err != nil {
		return RawResult{}, fmt.Errorf("classification failed: %w", err)
	}

	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return RawResult{}, errors.New("model returned no classification output")
	}

	best := output.ClassificationOutputs[0][0]
	return RawResult{Label: best.Label, Score: float64(best.Score)}, nil
}

func (c *HugotClassifier) ModelName() string {
	return c.model
}

func (c *HugotClassifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
}
