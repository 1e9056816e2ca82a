// Package repository loads stations, connections, and footpaths from
// Postgres into the shapes internal/profile needs, mirroring the
// teacher's pgxpool-backed repository/loader split.
package repository

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/transit-profile/internal/models"
	"github.com/antigravity/transit-profile/internal/profile"
	"github.com/antigravity/transit-profile/pkg/geo"
)

// StationRepository reads and writes the stations table.
type StationRepository struct {
	db *pgxpool.Pool
}

func NewStationRepository(db *pgxpool.Pool) *StationRepository {
	return &StationRepository{db: db}
}

func (r *StationRepository) GetAll(ctx context.Context) ([]models.Station, error) {
	rows, err := r.db.Query(ctx, `SELECT id, profile_id, code, name, lat, lon FROM stations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Code, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// ByName returns the first station whose name matches exactly, per
// SPEC_FULL.md's replacement for the Python original's id_from_name
// helper.
func (r *StationRepository) ByName(ctx context.Context, name string) (*models.Station, error) {
	var s models.Station
	err := r.db.QueryRow(ctx,
		`SELECT id, profile_id, code, name, lat, lon FROM stations WHERE name = $1 LIMIT 1`, name,
	).Scan(&s.ID, &s.ProfileID, &s.Code, &s.Name, &s.Lat, &s.Lon)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// InsertAll bulk-loads stations via pgx's binary COPY protocol.
func (r *StationRepository) InsertAll(ctx context.Context, stations []models.Station) (int64, error) {
	rows := make([][]interface{}, len(stations))
	for i, s := range stations {
		rows[i] = []interface{}{s.ProfileID, s.Code, s.Name, s.Lat, s.Lon}
	}
	return r.db.CopyFrom(ctx,
		pgx.Identifier{"stations"},
		[]string{"profile_id", "code", "name", "lat", "lon"},
		pgx.CopyFromRows(rows),
	)
}

// Nearest returns the station closest to (lat, lon), replacing the
// Python original's closest_station helper. It loads every station and
// scores them with pkg/geo rather than relying on PostGIS, since the
// station count in this domain is small enough that an index is not
// worth the extra extension dependency.
func (r *StationRepository) Nearest(ctx context.Context, lat, lon float64) (*models.Station, float64, error) {
	stations, err := r.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(stations) == 0 {
		return nil, 0, pgx.ErrNoRows
	}

	origin := geo.Point{Lat: lat, Lon: lon}
	points := make([]geo.Point, len(stations))
	for i, s := range stations {
		points[i] = geo.Point{Lat: s.Lat, Lon: s.Lon}
	}
	idx, dist := geo.Nearest(origin, points)
	return &stations[idx], dist, nil
}

// NetworkRepository loads the connections and footpaths the profile
// engine consumes.
type NetworkRepository struct {
	db *pgxpool.Pool
}

func NewNetworkRepository(db *pgxpool.Pool) *NetworkRepository {
	return &NetworkRepository{db: db}
}

// LoadConnections returns every scheduled connection, sorted as §4.2
// requires: (stop_time desc, start_time desc).
func (r *NetworkRepository) LoadConnections(ctx context.Context) ([]profile.Connection, error) {
	log.Println("[repository] loading connections from database")
	start := time.Now()

	rows, err := r.db.Query(ctx, `
		SELECT start_id, start_time, line_id, transport_type, stop_time, stop_id,
		       delay_probability, delay_parameter
		FROM connections
		ORDER BY stop_time DESC, start_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []profile.Connection
	for rows.Next() {
		var c profile.Connection
		var transportType string
		if err := rows.Scan(&c.StartID, &c.StartTime, &c.LineID, &transportType, &c.StopTime, &c.StopID,
			&c.DelayProbability, &c.DelayParameter); err != nil {
			return nil, err
		}
		c.TransportType = profile.TransportType(transportType)
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Printf("[repository] loaded %d connections in %s", len(conns), time.Since(start))
	return conns, nil
}

// InsertConnections bulk-loads connections via pgx's binary COPY
// protocol, the fast path for the thousands-of-rows timetable imports
// this CLI is meant for.
func (r *NetworkRepository) InsertConnections(ctx context.Context, conns []profile.Connection) (int64, error) {
	rows := make([][]interface{}, len(conns))
	for i, c := range conns {
		rows[i] = []interface{}{c.StartID, c.StartTime, c.LineID, string(c.TransportType), c.StopTime, c.StopID, c.DelayProbability, c.DelayParameter}
	}
	return r.db.CopyFrom(ctx,
		pgx.Identifier{"connections"},
		[]string{"start_id", "start_time", "line_id", "transport_type", "stop_time", "stop_id", "delay_probability", "delay_parameter"},
		pgx.CopyFromRows(rows),
	)
}

// InsertFootpaths bulk-loads footpaths via pgx's binary COPY protocol.
func (r *NetworkRepository) InsertFootpaths(ctx context.Context, footpaths profile.Footpaths) (int64, error) {
	var rows [][]interface{}
	for endpoint, walks := range footpaths {
		for _, w := range walks {
			rows = append(rows, []interface{}{endpoint, w.Origin, w.WalkSeconds})
		}
	}
	return r.db.CopyFrom(ctx,
		pgx.Identifier{"footpaths"},
		[]string{"endpoint_id", "origin_id", "walk_seconds"},
		pgx.CopyFromRows(rows),
	)
}

// LoadFootpaths returns the endpoint-indexed footpath map §3 describes.
func (r *NetworkRepository) LoadFootpaths(ctx context.Context) (profile.Footpaths, error) {
	rows, err := r.db.Query(ctx, `SELECT endpoint_id, origin_id, walk_seconds FROM footpaths`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(profile.Footpaths)
	for rows.Next() {
		var endpoint, origin profile.StationID
		var walkSeconds int32
		if err := rows.Scan(&endpoint, &origin, &walkSeconds); err != nil {
			return nil, err
		}
		out[endpoint] = append(out[endpoint], profile.Walk{Origin: origin, WalkSeconds: walkSeconds})
	}
	return out, rows.Err()
}
