package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity/transit-profile/internal/ingest"
	"github.com/antigravity/transit-profile/internal/profile"
)

var (
	demo              bool
	connectionsCSV    string
	footpathsCSV      string
	departureStation  int32
	arrivalStation    int32
	arrivalTime       int32
	minProbability    float64
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find journeys between two stations",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&demo, "demo", false, "use the built-in synthetic network instead of CSV files")
	queryCmd.Flags().StringVar(&connectionsCSV, "connections", "", "connections CSV path")
	queryCmd.Flags().StringVar(&footpathsCSV, "footpaths", "", "footpaths CSV path")
	queryCmd.Flags().Int32Var(&departureStation, "from", 0, "departure station id")
	queryCmd.Flags().Int32Var(&arrivalStation, "to", 0, "arrival station id")
	queryCmd.Flags().Int32Var(&arrivalTime, "arrival-time", 0, "arrival time, seconds since midnight")
	queryCmd.Flags().Float64Var(&minProbability, "min-probability", profile.DefaultMinProbability, "minimum acceptable on-time probability")
}

func runQuery(cmd *cobra.Command, args []string) error {
	var conns []profile.Connection
	var foot profile.Footpaths

	switch {
	case demo:
		dataset := ingest.NewSyntheticDataset()
		conns, foot = dataset.Connections, dataset.Footpaths
	case connectionsCSV != "":
		var err error
		conns, err = ingest.LoadConnectionsCSV(connectionsCSV)
		if err != nil {
			return err
		}
		if footpathsCSV != "" {
			foot, err = ingest.LoadFootpathsCSV(footpathsCSV)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("either --demo or --connections must be given")
	}

	engine, err := profile.New(conns, foot)
	if err != nil {
		return err
	}

	if err := engine.Find(profile.StationID(departureStation), profile.StationID(arrivalStation), arrivalTime, minProbability); err != nil {
		return err
	}

	journeys := engine.BestJourneys()
	if len(journeys) == 0 {
		fmt.Println("no journeys found")
		return nil
	}

	for i, j := range journeys {
		fmt.Printf("journey %d:\n", i)
		for _, leg := range j.Legs {
			c := leg.Connection
			if c.IsFootpath() {
				fmt.Printf("  walk %d -> %d (%s -> %s), p=%.4f\n",
					c.StartID, c.StopID, profile.SecondsToClock(c.StartTime), profile.SecondsToClock(c.StopTime), leg.ArrivalProbability)
				continue
			}
			fmt.Printf("  %s %s: %d (%s) -> %d (%s), p=%.4f\n",
				c.TransportType, c.LineID, c.StartID, profile.SecondsToClock(c.StartTime),
				c.StopID, profile.SecondsToClock(c.StopTime), leg.ArrivalProbability)
		}
	}
	return nil
}
