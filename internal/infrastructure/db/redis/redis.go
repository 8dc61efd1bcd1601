package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultPoolSize = 10
	clientName      = "emotion-api"

	// Limiter round trips are single script calls; a slow Redis should fail
	// them quickly so the request is let through instead of stalling login.
	commandTimeout = 500 * time.Millisecond
)

// Config captures the settings for the rate limiter's Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	// Timeout bounds dialing and the startup ping.
	Timeout time.Duration
}

// Connect opens a named, bounded client and pings it before returning.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		PoolSize:     poolSize,
		DialTimeout:  timeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping: %w", cfg.Addr, err)
	}

	return client, nil
}

// Ping reports whether client answers; backs the readiness check.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
