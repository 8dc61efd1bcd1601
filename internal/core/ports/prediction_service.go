package ports

import (
	"context"
	"io"
	"time"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// AudioUpload is the file part of a prediction request.
type AudioUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PredictInput is the DTO passed from the transport layer to PredictionService.
type PredictInput struct {
	Username string
	Name     string
	Age      string
	File     *AudioUpload
}

// PredictResult is the stored prediction plus upstream passthrough fields.
type PredictResult struct {
	Emotion       domain.Emotion
	Probabilities domain.Probabilities
	PredictionID  string
	Confidence    float64
	Timestamp     time.Time
	Extra         map[string]any
}

type PredictionService interface {
	Predict(ctx context.Context, in PredictInput) (*PredictResult, error)
}
