package main

import (
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd applies pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return err
		}
		defer conn.Close()

		m := database.NewMigrationManager(conn, logger)
		if err := m.RunMigrations(); err != nil {
			return err
		}
		applied, err := m.GetAppliedMigrations()
		if err != nil {
			return err
		}
		version, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: schema at version %d (%d migrations applied)\n", cfg.DBPath, version, len(applied))
		return nil
	},
}
