package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/api/metrics"
	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

// ReportService builds per-user reports from stored predictions.
type ReportService struct {
	predictions ports.PredictionRepository
	users       ports.UserRepository
	cache       ports.ReportCache
	logger      zerolog.Logger
}

// NewReportService returns a ReportService. cache may be nil.
func NewReportService(predictions ports.PredictionRepository, users ports.UserRepository, cache ports.ReportCache, logger zerolog.Logger) *ReportService {
	return &ReportService{predictions: predictions, users: users, cache: cache, logger: logger}
}

// GetReports returns the user's predictions newest first with statistics.
// It fails with domain.ErrNoReports when the user has none.
func (s *ReportService) GetReports(ctx context.Context, username string) (*domain.Report, error) {
	if username == "" {
		return nil, domain.NewValidationError("Username is required")
	}
	if s.cache != nil {
		if r, ok := s.cache.Get(username); ok {
			metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
			return r, nil
		}
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
	}

	preds, err := s.predictions.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return nil, domain.ErrNoReports
	}

	report := &domain.Report{
		Predictions: preds,
		Statistics:  domain.Summarize(preds),
	}
	if s.cache != nil {
		s.cache.Set(username, report)
	}
	return report, nil
}

// GetUserStats never fails on an account without predictions. MemberSince is
// nil when no user record exists for username.
func (s *ReportService) GetUserStats(ctx context.Context, username string) (*domain.UserStats, error) {
	if username == "" {
		return nil, domain.NewValidationError("Username is required")
	}

	total, err := s.predictions.CountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	stats := &domain.UserStats{Username: username, TotalReports: total}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		since := user.CreatedAt
		stats.MemberSince = &since
	case errors.Is(err, domain.ErrUserNotFound):
		s.logger.Debug().Str("username", username).Msg("user stats requested for unknown account")
	default:
		return nil, err
	}
	return stats, nil
}
