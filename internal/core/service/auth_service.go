package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/emotionai/emotion-api/internal/api/metrics"
	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

// AuthService implements signup and login against hashed credentials.
type AuthService struct {
	repo   ports.UserRepository
	cost   int
	logger zerolog.Logger

	// dummyHash is compared against when the username is unknown so both
	// failure paths spend the same bcrypt time.
	dummyHash []byte
}

func NewAuthService(repo ports.UserRepository, cost int, logger zerolog.Logger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &AuthService{repo: repo, cost: cost, logger: logger, dummyHash: dummy}
}

// Signup validates the credentials, rejects taken usernames and stores a
// bcrypt hash of the password. It returns the new user's ID.
func (s *AuthService) Signup(ctx context.Context, username, password string) (_ string, err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("signup", authOutcome(err)).Inc() }()

	if username == "" || password == "" {
		return "", domain.NewValidationError("Username and password required")
	}
	if utf8.RuneCountInString(username) < domain.MinUsernameLength {
		return "", domain.NewValidationError("Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		return "", domain.NewValidationError("Password must be at least 6 characters")
	}
	if len(password) > domain.MaxPasswordBytes {
		return "", domain.NewValidationError(fmt.Sprintf("Password must be at most %d bytes", domain.MaxPasswordBytes))
	}

	_, err = s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return "", domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Str("user_id", created.ID).Msg("user registered")
	return created.ID, nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown username and
// a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (_ *domain.User, err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("login", authOutcome(err)).Inc() }()

	if username == "" || password == "" {
		return nil, domain.NewValidationError("Username and password required")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return user, nil
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "unauthorized"
	default:
		return "error"
	}
}
