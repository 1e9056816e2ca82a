// Package models holds the wire/storage shapes shared by the ingestion,
// repository, and HTTP layers. The profile search engine itself only
// knows about profile.StationID and profile.Connection; these types carry
// the extra metadata (names, coordinates, database ids) those layers need.
package models

// Station is a transit stop as persisted and served outside the core:
// a database id, the dense profile.StationID it maps to, and display
// metadata.
type Station struct {
	ID        int64   `json:"id" csv:"-"`
	ProfileID int32   `json:"profile_id" csv:"profile_id"`
	Code      string  `json:"code" csv:"code"`
	Name      string  `json:"name" csv:"name"`
	Lat       float64 `json:"lat" csv:"lat"`
	Lon       float64 `json:"lon" csv:"lon"`
}

// ConnectionRecord is one scheduled vehicle hop as stored in Postgres or a
// CSV file, before conversion to profile.Connection.
type ConnectionRecord struct {
	StartID          int32   `csv:"start_id" db:"start_id"`
	StartTime        int32   `csv:"start_time" db:"start_time"`
	LineID           string  `csv:"line_id" db:"line_id"`
	TransportType    string  `csv:"transport_type" db:"transport_type"`
	StopTime         int32   `csv:"stop_time" db:"stop_time"`
	StopID           int32   `csv:"stop_id" db:"stop_id"`
	DelayProbability float64 `csv:"delay_probability" db:"delay_probability"`
	DelayParameter   float64 `csv:"delay_parameter" db:"delay_parameter"`
}

// FootpathRecord is one incoming walk between two stations.
type FootpathRecord struct {
	EndpointID  int32 `csv:"endpoint_id" db:"endpoint_id"`
	OriginID    int32 `csv:"origin_id" db:"origin_id"`
	WalkSeconds int32 `csv:"walk_seconds" db:"walk_seconds"`
}

// JourneyQuery is the request shape accepted by the HTTP and CLI surfaces.
type JourneyQuery struct {
	DepartureStation int32   `json:"departure_station"`
	ArrivalStation   int32   `json:"arrival_station"`
	ArrivalTime      int32   `json:"arrival_time"`
	MinProbability   float64 `json:"min_probability"`
}
