package ports

import (
	"context"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

type ReportService interface {
	GetReports(ctx context.Context, username string) (*domain.Report, error)
	GetUserStats(ctx context.Context, username string) (*domain.UserStats, error)
}

// ReportCache memoizes computed reports per username.
type ReportCache interface {
	Get(username string) (*domain.Report, bool)
	Set(username string, r *domain.Report)
	Invalidate(username string)
}
