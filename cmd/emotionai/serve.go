package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emotionai/emotion-api/internal/api"
	"github.com/emotionai/emotion-api/internal/api/handler"
	"github.com/emotionai/emotion-api/internal/api/middleware"
	"github.com/emotionai/emotion-api/internal/core/service"
	"github.com/emotionai/emotion-api/internal/infrastructure/cache"
	"github.com/emotionai/emotion-api/internal/infrastructure/config"
	mongodb "github.com/emotionai/emotion-api/internal/infrastructure/db/mongo"
	redisdb "github.com/emotionai/emotion-api/internal/infrastructure/db/redis"
	"github.com/emotionai/emotion-api/internal/infrastructure/mlclient"
	"github.com/emotionai/emotion-api/internal/infrastructure/storage"
	"github.com/emotionai/emotion-api/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func serveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the web client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Component("server")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.WithoutCancel(ctx)) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongodb.Ping(ctx, db) },
	}

	// Redis only backs the auth rate limiter; without it the API still serves.
	var limiter middleware.Limiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, auth rate limiting disabled")
	} else {
		defer rdb.Close()
		fw, err := redisdb.NewFixedWindowLimiter(rdb, "", cfg.RateLimit.Limit, cfg.RateLimit.Window)
		if err != nil {
			return err
		}
		limiter = fw
		checks["redis"] = func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) }
	}

	router, err := buildRouter(cfg, db, limiter, checks)
	if err != nil {
		return err
	}

	uploadsJanitor := storage.NewJanitor(cfg.Upload.Dir, cfg.Upload.SweepInterval, cfg.Upload.MaxAge, logger.Component("janitor"))
	uploadsJanitor.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// buildRouter assembles repositories, services and handlers on top of the
// open connections.
func buildRouter(cfg *config.Config, db *mongo.Database, limiter middleware.Limiter, checks map[string]handler.Check) (http.Handler, error) {
	users := mongodb.NewUserRepository(db)
	predictions := mongodb.NewPredictionRepository(db)

	uploads, err := storage.NewUploadStore(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}

	var signer *mlclient.TokenSigner
	if cfg.ML.TokenSecret != "" {
		signer, err = mlclient.NewTokenSigner(cfg.ML.TokenSecret, mlclient.DefaultTokenTTL)
		if err != nil {
			return nil, err
		}
	}
	classifier := mlclient.NewClient(mlclient.Config{
		BaseURL: cfg.ML.URL,
		Timeout: cfg.ML.Timeout,
		Signer:  signer,
	}, logger.Component("mlclient"))

	reports := cache.NewReportCache(cfg.Reports.CacheTTL)

	authSvc := service.NewAuthService(users, cfg.BcryptCost, logger.Component("auth"))
	predictionSvc := service.NewPredictionService(service.PredictionDeps{
		Uploads:        uploads,
		Probe:          storage.ProbeAudio,
		Classifier:     classifier,
		Repo:           predictions,
		Cache:          reports,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	}, logger.Component("predictions"))
	reportSvc := service.NewReportService(predictions, users, reports, logger.Component("reports"))

	proxies, err := cfg.RateLimit.ProxyRanges()
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.RouterDeps{
		Auth:           handler.NewAuthHandler(authSvc),
		Predictions:    handler.NewPredictionHandler(predictionSvc, reportSvc),
		Health:         handler.NewHealthHandler(checks),
		Limiter:        limiter,
		RateWindow:     cfg.RateLimit.Window,
		TrustedProxies: proxies,
		AllowedOrigins: cfg.AllowedOrigins(),
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Logger:         logger.Component("http"),
	}), nil
}
