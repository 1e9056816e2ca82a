package ingest

import "github.com/antigravity/transit-profile/internal/profile"

// SyntheticDataset is a small, hand-built (connections, footpaths) pair
// used by the CLI's --demo flag to give a runnable system without a live
// Postgres instance or CSV files, in place of the Python
// original's dummy_data.create_zurich_data pickle fixtures.
type SyntheticDataset struct {
	Connections []profile.Connection
	Footpaths   profile.Footpaths
	Stations    map[profile.StationID]string
}

// Station ids used by the synthetic dataset.
const (
	StationHauptbahnhof profile.StationID = 1
	StationStadelhofen  profile.StationID = 2
	StationOerlikon     profile.StationID = 3
	StationAuzelg       profile.StationID = 4
)

// NewSyntheticDataset builds a tiny four-station network: three lines and
// one footpath, loosely modelled on the Zürich HB → Auzelg corridor the
// Python original's default demo used.
func NewSyntheticDataset() SyntheticDataset {
	conns := []profile.Connection{
		{StartID: StationHauptbahnhof, StartTime: 8*3600 + 0, LineID: "T11", TransportType: profile.TransportTram, StopTime: 8*3600 + 360, StopID: StationStadelhofen, DelayProbability: 0.05, DelayParameter: 0.02},
		{StartID: StationStadelhofen, StartTime: 8*3600 + 600, LineID: "S6", TransportType: profile.TransportZug, StopTime: 8*3600 + 900, StopID: StationOerlikon, DelayProbability: 0.15, DelayParameter: 0.01},
		{StartID: StationOerlikon, StartTime: 8*3600 + 960, LineID: "B94", TransportType: profile.TransportBus, StopTime: 8*3600 + 1200, StopID: StationAuzelg, DelayProbability: 0.1, DelayParameter: 0.015},
		{StartID: StationHauptbahnhof, StartTime: 8*3600 + 120, LineID: "S6", TransportType: profile.TransportZug, StopTime: 8*3600 + 840, StopID: StationOerlikon, DelayProbability: 0.08, DelayParameter: 0.02},
	}

	foot := profile.Footpaths{
		StationOerlikon: {{Origin: StationStadelhofen, WalkSeconds: 240}},
	}

	stations := map[profile.StationID]string{
		StationHauptbahnhof: "Zürich HB",
		StationStadelhofen:  "Zürich, Stadelhofen",
		StationOerlikon:     "Zürich, Oerlikon",
		StationAuzelg:       "Zürich, Auzelg",
	}

	return SyntheticDataset{Connections: conns, Footpaths: foot, Stations: stations}
}
