package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/apiman/apiman-ui/internal/config"
	"github.com/apiman/apiman-ui/internal/db/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the Postgres session store schema.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadForMigrations()
		if err != nil {
			return configError(err)
		}
		return migrations.Up(cfg.DatabaseURL, slog.Default())
	},
}
