package profile

import "fmt"

// JourneyRow is one flattened leg of a journey, the shape the output
// formatter (§4.4) hands to the UI and the CLI.
type JourneyRow struct {
	StartID            StationID
	StartTime          int32
	LineID             string
	TransportType      TransportType
	StopTime           int32
	StopID             StationID
	DelayProbability   float64
	DelayParameter     float64
	ArrivalProbability float64
	Transfers          int
	Path               int
}

// FlattenJourneys flattens journeys into rows, one per leg, in travel
// order within each journey. Transfers is the count of distinct line ids
// across the whole journey (synthetic "foot:k" legs, each carrying a
// unique id, count individually).
func FlattenJourneys(journeys []Journey) []JourneyRow {
	var rows []JourneyRow
	for path, journey := range journeys {
		lines := make(map[string]struct{}, len(journey.Legs))
		for _, leg := range journey.Legs {
			lines[leg.Connection.LineID] = struct{}{}
		}
		transfers := len(lines)

		for _, leg := range journey.Legs {
			c := leg.Connection
			rows = append(rows, JourneyRow{
				StartID:            c.StartID,
				StartTime:          c.StartTime,
				LineID:             c.LineID,
				TransportType:      c.TransportType,
				StopTime:           c.StopTime,
				StopID:             c.StopID,
				DelayProbability:   c.DelayProbability,
				DelayParameter:     c.DelayParameter,
				ArrivalProbability: leg.ArrivalProbability,
				Transfers:          transfers,
				Path:               path,
			})
		}
	}
	return rows
}

// SecondsToClock renders seconds-since-midnight as HH:MM:SS, mirroring the
// same helper on the teacher's RAPTOR engine.
func SecondsToClock(seconds int32) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
