// Command journeyctl is a CLI front end for the journey planning engine:
// query against a demo or CSV-backed network without standing up the
// HTTP server, import timetable CSVs into Postgres, and drive schema
// migrations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "journeyctl",
	Short:        "Transit journey planning CLI",
	Long:         "Queries and manages the probabilistic journey planning engine",
	SilenceUsage: true,
}

var dsn string

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres connection string (defaults to config.Load())")
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
