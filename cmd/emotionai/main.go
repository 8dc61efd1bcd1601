// @title        Emotion AI API
// @version      1.0.0
// @description  Voice emotion recognition: accounts, audio relay to the ML model and per-user reports.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emotionai/emotion-api/internal/infrastructure/config"
	"github.com/emotionai/emotion-api/pkg/logger"
)

const serviceName = "emotion-api"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// rootCommand loads configuration and the logger before any subcommand runs.
func rootCommand() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "emotionai",
		Short:         "Emotion AI backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			*cfg = *loaded

			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: serviceName,
			})
			return nil
		},
	}

	rootCmd.AddCommand(serveCommand(cfg), indexesCommand(cfg))
	return rootCmd
}
