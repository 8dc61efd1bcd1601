package ports

import (
	"context"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
