package ports

import (
	"context"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// PredictionRepository persists classification results.
type PredictionRepository interface {
	Create(ctx context.Context, p *domain.Prediction) error
	// ListByUsername returns the user's predictions ordered newest first.
	ListByUsername(ctx context.Context, username string) ([]domain.Prediction, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
}
