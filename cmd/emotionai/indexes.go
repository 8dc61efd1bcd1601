package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/emotionai/emotion-api/internal/infrastructure/config"
	mongodb "github.com/emotionai/emotion-api/internal/infrastructure/db/mongo"
	"github.com/emotionai/emotion-api/pkg/logger"
)

func indexesCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Component("indexes")

			client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()

			if err := mongodb.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
			return nil
		},
	}
}
