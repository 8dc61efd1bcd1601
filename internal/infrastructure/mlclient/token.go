package mlclient

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 60 * time.Second
	tokenIssuer     = "emotion-api"
	tokenAudience   = "emotion-ml"
)

// TokenSigner issues short-lived HS256 tokens that authenticate this API to
// the prediction service.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenSigner(secret string, ttl time.Duration) (*TokenSigner, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("service token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *TokenSigner) Sign() (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        randomID(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func randomID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
