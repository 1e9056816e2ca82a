// Package ingest builds the core's (connections, footpaths) input pair
// from external sources: CSV files, or an in-memory synthetic dataset for
// demos and tests. Raw timetable ingestion and cleaning are out of scope
// for the profile search core (spec treats them as an external
// collaborator); this package is the minimal bridge from that external
// world into profile.Connection/profile.Footpaths.
package ingest

import (
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/antigravity/transit-profile/internal/models"
	"github.com/antigravity/transit-profile/internal/profile"
)

// LoadConnectionsCSV reads a connections CSV file (columns matching
// models.ConnectionRecord's csv tags) and returns profile.Connection
// values sorted by (stop_time desc, start_time desc), the order §4.2
// requires for the scan. Rows with a negative duration are dropped, per
// the "Connection input shape" contract in spec.md §6 — ingestion, not
// the core, is responsible for that filtering.
func LoadConnectionsCSV(path string) ([]profile.Connection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening connections file %q", path)
	}
	defer f.Close()

	var records []*models.ConnectionRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing connections file %q", path)
	}

	conns := make([]profile.Connection, 0, len(records))
	for _, r := range records {
		if r.StopTime < r.StartTime {
			continue
		}
		conns = append(conns, profile.Connection{
			StartID:          profile.StationID(r.StartID),
			StartTime:        r.StartTime,
			LineID:           r.LineID,
			TransportType:    profile.TransportType(r.TransportType),
			StopTime:         r.StopTime,
			StopID:           profile.StationID(r.StopID),
			DelayProbability: r.DelayProbability,
			DelayParameter:   r.DelayParameter,
		})
	}

	sort.SliceStable(conns, func(i, j int) bool {
		if conns[i].StopTime != conns[j].StopTime {
			return conns[i].StopTime > conns[j].StopTime
		}
		return conns[i].StartTime > conns[j].StartTime
	})

	return conns, nil
}

// LoadStationsCSV reads a stations CSV file (columns matching
// models.Station's csv tags) for the import CLI command.
func LoadStationsCSV(path string) ([]models.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening stations file %q", path)
	}
	defer f.Close()

	var stations []models.Station
	if err := gocsv.UnmarshalFile(f, &stations); err != nil {
		return nil, errors.Wrapf(err, "parsing stations file %q", path)
	}
	return stations, nil
}

// LoadFootpathsCSV reads a footpaths CSV file (columns matching
// models.FootpathRecord's csv tags) and returns the endpoint-indexed
// footpath map §3 describes.
func LoadFootpathsCSV(path string) (profile.Footpaths, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening footpaths file %q", path)
	}
	defer f.Close()

	var records []*models.FootpathRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing footpaths file %q", path)
	}

	out := make(profile.Footpaths)
	for _, r := range records {
		endpoint := profile.StationID(r.EndpointID)
		out[endpoint] = append(out[endpoint], profile.Walk{
			Origin:      profile.StationID(r.OriginID),
			WalkSeconds: r.WalkSeconds,
		})
	}
	return out, nil
}
