package ports

import (
	"context"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
