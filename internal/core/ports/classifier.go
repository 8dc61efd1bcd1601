package ports

import (
	"context"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// Classification is the upstream response. Extra holds any additional keys
// the service returned so they can be passed through to the caller.
type Classification struct {
	Emotion       string
	Probabilities domain.Probabilities
	Extra         map[string]any
}

// Classifier sends an audio file to the external emotion model.
type Classifier interface {
	Classify(ctx context.Context, path string) (*Classification, error)
}
