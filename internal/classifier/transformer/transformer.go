//go:build hugot

// Package transformer runs Hugging Face text-classification models through
// ONNX Runtime. It links the native tokenizers and onnxruntime libraries, so it
// is only compiled with -tags hugot.
package transformer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"xsentiment/internal/classifier"
)

type Model struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// New loads modelName from modelDir, downloading it first when missing.
func New(modelName, modelDir string) (*Model, error) {
	modelPath, err := ensureModel(modelName, modelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, errors.Wrap(err, "create hugot session")
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentiment",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, errors.Wrapf(err, "create pipeline for %s", modelName)
	}

	slog.Info("sentiment model loaded", "model", modelName, "path", modelPath)

	return &Model{session: session, pipeline: pipeline}, nil
}

func (h *Model) Predict(_ context.Context, text string) (classifier.Prediction, error) {
	out, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return classifier.Prediction{}, errors.Wrap(err, "run pipeline")
	}
	if len(out.ClassificationOutputs) == 0 || len(out.ClassificationOutputs[0]) == 0 {
		return classifier.Prediction{}, errors.New("pipeline returned no classification")
	}

	best := out.ClassificationOutputs[0][0]
	for _, c := range out.ClassificationOutputs[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return classifier.Prediction{Label: best.Label, Score: float64(best.Score)}, nil
}

func (h *Model) Close() error {
	return h.session.Destroy()
}

func ensureModel(modelName, modelDir string) (string, error) {
	local := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create model dir")
	}

	slog.Info("downloading sentiment model", "model", modelName, "dir", modelDir)
	path, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", errors.Wrapf(err, "download %s", modelName)
	}
	return path, nil
}
