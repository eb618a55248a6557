package main

import (
	"context"
	"fmt"

	"revenda-service/internal/app"
	"revenda-service/internal/config"
	"revenda-service/internal/db"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "settlectl",
	Short:         "Inspect settlement runs and pricing bands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log service activity to stderr")
}

// withComponents connects to Postgres, builds the services and runs fn.
func withComponents(ctx context.Context, fn func(ctx context.Context, c *app.Components) error) error {
	cfg := config.Load()

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		logger = l
	}
	defer logger.Sync()

	pool, err := db.ConnectDB(db.PostgresConfig{URL: cfg.DatabaseURL, MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, app.BuildComponents(cfg, pool, nil, logger))
}
