package main

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/infrastructure/postgres"
	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// adminConfig is the subset of the server config the CLI needs.
type adminConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

func loadConfig() (*adminConfig, error) {
	cfg := &adminConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, cfg.DatabaseURL)
}

// NewRootCmd creates the root command for the admin CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Estate listings administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCreateSuperuserCmd())
	cmd.AddCommand(NewSetFlagsCmd())

	return cmd
}
