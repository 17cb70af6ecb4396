//cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unclebandit/customers-dashboard/internal/config"
	"github.com/unclebandit/customers-dashboard/internal/db"
	"github.com/unclebandit/customers-dashboard/internal/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		files  []string
		driver string
	)

	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Create the customers schema and load seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Database.Driver = driver
			}
			logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			return seed(cmd.Context(), cfg.Database, files, func(file string) {
				logger.Info().Str("file", file).Msg("seeded")
			})
		},
	}
	cmd.Flags().StringSliceVarP(&files, "file", "f", []string{"seed/customers.sql"}, "SQL files to execute in order")
	cmd.Flags().StringVar(&driver, "driver", "", "override DB_DRIVER (postgres or sqlite)")
	return cmd
}

func seed(ctx context.Context, cfg config.DatabaseConfig, files []string, onSeeded func(string)) error {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, cfg.Driver); err != nil {
		return err
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
		onSeeded(file)
	}
	return nil
}
