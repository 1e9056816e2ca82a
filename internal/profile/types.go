// Package profile implements the profile search algorithm: a reverse-time
// scan over a time-ordered connection table that computes, for a fixed
// arrival station and time, the probability that a journey starting from
// any other station reaches it on time.
package profile

// StationID is an opaque, totally-ordered station identifier. Real station
// ids must be non-negative; SentinelStationID marks the arrival terminator.
type StationID int32

// SentinelStationID marks the synthetic stop of the arrival sentinel
// connection and the absence of a station in contexts that need one.
const SentinelStationID StationID = -1

// SentinelIndex marks the absence of a follow-on entry index.
const SentinelIndex = -1

// TransportType categorises the vehicle (or absence of one) behind a leg.
type TransportType string

const (
	TransportBus    TransportType = "bus"
	TransportZug    TransportType = "zug"
	TransportTram   TransportType = "tram"
	TransportSchiff TransportType = "schiff"
	TransportFoot   TransportType = "foot"
)

// Connection is a scheduled vehicle hop between two stations on one line,
// or (with LineID == "") the arrival sentinel, or (with a "foot:" LineID
// prefix) a synthetic footpath leg emitted during search.
type Connection struct {
	StartID          StationID
	StartTime        int32
	LineID           string
	TransportType    TransportType
	StopTime         int32
	StopID           StationID
	DelayProbability float64
	DelayParameter   float64
}

// IsFootpath reports whether c is a synthetic footpath leg.
func (c Connection) IsFootpath() bool {
	return len(c.LineID) >= 5 && c.LineID[:5] == "foot:"
}

// IsSentinel reports whether c is the arrival terminator connection.
func (c Connection) IsSentinel() bool {
	return c.LineID == ""
}

// Walk is one incoming footpath edge: walking from Origin takes WalkSeconds
// to reach the station that indexes this entry.
type Walk struct {
	Origin      StationID
	WalkSeconds int32
}

// Footpaths maps a station to the list of walks that end there.
type Footpaths map[StationID][]Walk

// StationEntry is one candidate departure appended to a station's profile
// during the scan. NextIndex, when not SentinelIndex, points into the
// Entries slice of the station S[Connection.StopID], at an index appended
// strictly before this entry.
type StationEntry struct {
	NextIndex          int
	ArrivalProbability float64
	Connection         Connection
}

// StationProfile is the per-station search state: the best arrival
// probability seen so far, the latest firm (certain) departure time, and
// the append-only list of candidate departures.
type StationProfile struct {
	BestP       float64
	FirmDepTime int32
	Entries     []StationEntry
}

func newStationProfile() *StationProfile {
	return &StationProfile{FirmDepTime: -1}
}

// Journey is a sequence of legs in travel order (earliest StartTime first).
type Journey struct {
	Legs []Leg
}

// Leg is one connection taken as part of a Journey, paired with the
// probability that the journey from this leg onward arrives on time.
type Leg struct {
	ArrivalProbability float64
	Connection         Connection
}
