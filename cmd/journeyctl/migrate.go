package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity/transit-profile/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedDSN, err := resolveDSN()
		if err != nil {
			return err
		}
		return migrations.Up(resolvedDSN)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedDSN, err := resolveDSN()
		if err != nil {
			return err
		}
		return migrations.Down(resolvedDSN)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedDSN, err := resolveDSN()
		if err != nil {
			return err
		}
		version, dirty, err := migrations.Version(resolvedDSN)
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}
