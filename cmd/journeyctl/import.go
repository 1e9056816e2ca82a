package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/antigravity/transit-profile/config"
	"github.com/antigravity/transit-profile/internal/ingest"
	"github.com/antigravity/transit-profile/internal/repository"
)

var (
	importStationsCSV    string
	importConnectionsCSV string
	importFootpathsCSV   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load stations, connections, and footpaths into Postgres",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importStationsCSV, "stations", "", "stations CSV path")
	importCmd.Flags().StringVar(&importConnectionsCSV, "connections", "", "connections CSV path")
	importCmd.Flags().StringVar(&importFootpathsCSV, "footpaths", "", "footpaths CSV path")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resolvedDSN, err := resolveDSN()
	if err != nil {
		return err
	}
	pool, err := pgxpool.New(ctx, resolvedDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if importStationsCSV != "" {
		stations, err := ingest.LoadStationsCSV(importStationsCSV)
		if err != nil {
			return err
		}
		n, err := repository.NewStationRepository(pool).InsertAll(ctx, stations)
		if err != nil {
			return fmt.Errorf("inserting stations: %w", err)
		}
		fmt.Printf("inserted %d stations\n", n)
	}

	if importConnectionsCSV != "" {
		conns, err := ingest.LoadConnectionsCSV(importConnectionsCSV)
		if err != nil {
			return err
		}
		n, err := repository.NewNetworkRepository(pool).InsertConnections(ctx, conns)
		if err != nil {
			return fmt.Errorf("inserting connections: %w", err)
		}
		fmt.Printf("inserted %d connections\n", n)
	}

	if importFootpathsCSV != "" {
		foot, err := ingest.LoadFootpathsCSV(importFootpathsCSV)
		if err != nil {
			return err
		}
		n, err := repository.NewNetworkRepository(pool).InsertFootpaths(ctx, foot)
		if err != nil {
			return fmt.Errorf("inserting footpaths: %w", err)
		}
		fmt.Printf("inserted %d footpaths\n", n)
	}

	return nil
}

func resolveDSN() (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Postgres.DSN(), nil
}
