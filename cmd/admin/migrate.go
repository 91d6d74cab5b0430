package main

import (
	"github.com/ErlanBelekov/estate-listings/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand with up, down and version.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *postgres.Migrator) error {
				return m.Up()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *postgres.Migrator) error {
				return m.Down()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(*postgres.Migrator) error { return nil })
		},
	})

	return cmd
}

// withMigrator runs fn and then reports the resulting schema version.
func withMigrator(cmd *cobra.Command, fn func(*postgres.Migrator) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := postgres.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := fn(m); err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
