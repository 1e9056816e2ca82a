package profile

import (
	"fmt"
	"math"
	"sort"
)

// DefaultMinProbability, DefaultMaxProbability, and DefaultTransferTime are
// the defaults named in the Engine API (§6).
const (
	DefaultMinProbability = 0.9
	DefaultMaxProbability = 0.999999
	DefaultTransferTime   = int32(120)
)

// Params holds the tunables for one Find call, beyond the three positional
// arguments (departure, arrival, arrival time).
type Params struct {
	MinProbability float64
	MaxProbability float64
	TransferTime   int32
}

// Option customises a Find call.
type Option func(*Params)

// WithMaxProbability overrides the "firm" probability threshold above which
// an entry is treated as certain for pruning purposes.
func WithMaxProbability(p float64) Option {
	return func(params *Params) { params.MaxProbability = p }
}

// WithTransferTime overrides the minimum buffer required at a real transfer.
func WithTransferTime(seconds int32) Option {
	return func(params *Params) { params.TransferTime = seconds }
}

// Engine holds the immutable connection table and footpath index and
// performs profile searches against them. Find stores its result on the
// Engine, replacing the previous one, so an Engine is not safe for
// concurrent Find calls; independent concurrent queries each use their own
// Engine over the same connections and footpaths.
type Engine struct {
	connections   []Connection
	footpaths     Footpaths
	knownStations map[StationID]struct{}

	result *searchResult
}

type searchResult struct {
	stations         map[StationID]*StationProfile
	departureStation StationID
}

// New builds an Engine over connections (expected sorted by
// (stop_time desc, start_time desc, trip_index asc), per §6) and footpaths.
// It rejects malformed connections: stop_time < start_time, or a
// non-finite delay parameter or probability outside [0,1].
func New(connections []Connection, footpaths Footpaths) (*Engine, error) {
	known := make(map[StationID]struct{}, len(connections)*2)
	for i, c := range connections {
		if c.StopTime < c.StartTime {
			return nil, fmt.Errorf("%w: connection %d has stop_time %d < start_time %d", ErrMalformedConnection, i, c.StopTime, c.StartTime)
		}
		if math.IsNaN(c.DelayParameter) || math.IsInf(c.DelayParameter, 0) || c.DelayParameter < 0 {
			return nil, fmt.Errorf("%w: connection %d has invalid delay_parameter %v", ErrMalformedConnection, i, c.DelayParameter)
		}
		if math.IsNaN(c.DelayProbability) || c.DelayProbability < 0 || c.DelayProbability > 1 {
			return nil, fmt.Errorf("%w: connection %d has invalid delay_probability %v", ErrMalformedConnection, i, c.DelayProbability)
		}
		known[c.StartID] = struct{}{}
		known[c.StopID] = struct{}{}
	}
	for endpoint, walks := range footpaths {
		known[endpoint] = struct{}{}
		for _, w := range walks {
			known[w.Origin] = struct{}{}
		}
	}
	if footpaths == nil {
		footpaths = Footpaths{}
	}
	return &Engine{connections: connections, footpaths: footpaths, knownStations: known}, nil
}

// Find performs the reverse-time scan described in §4.2, populating the
// engine's internal state. Call BestJourneys afterward to read results.
func (e *Engine) Find(departureStation, arrivalStation StationID, arrivalTime int32, minProbability float64, opts ...Option) error {
	params := Params{
		MinProbability: minProbability,
		MaxProbability: DefaultMaxProbability,
		TransferTime:   DefaultTransferTime,
	}
	for _, opt := range opts {
		opt(&params)
	}

	if minProbability < 0 || minProbability > 1 || params.MaxProbability < 0 || params.MaxProbability > 1 || minProbability > params.MaxProbability {
		return fmt.Errorf("%w: min_probability=%v max_probability=%v", ErrInvalidProbability, minProbability, params.MaxProbability)
	}
	if _, ok := e.knownStations[departureStation]; !ok {
		return fmt.Errorf("%w: departure station %d", ErrUnknownStation, departureStation)
	}
	if _, ok := e.knownStations[arrivalStation]; !ok {
		return fmt.Errorf("%w: arrival station %d", ErrUnknownStation, arrivalStation)
	}

	stations := make(map[StationID]*StationProfile)
	get := func(id StationID) *StationProfile {
		sp, ok := stations[id]
		if !ok {
			sp = newStationProfile()
			stations[id] = sp
		}
		return sp
	}

	arrival := get(arrivalStation)
	arrival.BestP = 1.0
	arrival.FirmDepTime = arrivalTime
	arrival.Entries = []StationEntry{{
		NextIndex:          SentinelIndex,
		ArrivalProbability: 1.0,
		Connection: Connection{
			StartID:  arrivalStation,
			StartTime: arrivalTime,
			LineID:   "",
			StopTime: arrivalTime,
			StopID:   SentinelStationID,
		},
	}}

	departureMinTime := int32(-1)
	footCounter := 0

	startIdx := sort.Search(len(e.connections), func(i int) bool {
		return e.connections[i].StopTime <= arrivalTime
	})

	for i := startIdx; i < len(e.connections); i++ {
		c := e.connections[i]

		if c.StopTime < departureMinTime {
			break
		}

		stopProfile := get(c.StopID)
		if stopProfile.BestP < params.MinProbability {
			continue
		}

		startProfile := get(c.StartID)
		if c.StartTime < startProfile.FirmDepTime {
			continue
		}

		followIdx, p, ok := bestFollowOn(stopProfile.Entries, c, params.TransferTime)
		if !ok || p < params.MinProbability {
			continue
		}

		if dominated(startProfile.Entries, p, c.StartTime) {
			continue
		}

		appendedIndex := len(startProfile.Entries)
		startProfile.Entries = append(startProfile.Entries, StationEntry{
			NextIndex:          followIdx,
			ArrivalProbability: p,
			Connection:         c,
		})
		if p > startProfile.BestP {
			startProfile.BestP = p
		}
		if p >= params.MaxProbability {
			startProfile.FirmDepTime = c.StartTime
			if c.StartID == departureStation && c.StartTime > departureMinTime {
				departureMinTime = c.StartTime
			}
		}

		for _, w := range e.footpaths[c.StartID] {
			prevDep := c.StartTime - w.WalkSeconds - params.TransferTime
			prevProfile := get(w.Origin)
			if prevDep < prevProfile.FirmDepTime {
				continue
			}
			if dominated(prevProfile.Entries, p, prevDep) {
				continue
			}

			synthetic := Connection{
				StartID:       w.Origin,
				StartTime:     prevDep,
				LineID:        fmt.Sprintf("foot:%d", footCounter),
				TransportType: TransportFoot,
				StopTime:      prevDep + w.WalkSeconds,
				StopID:        c.StartID,
			}
			footCounter++

			prevProfile.Entries = append(prevProfile.Entries, StationEntry{
				NextIndex:          appendedIndex,
				ArrivalProbability: p,
				Connection:         synthetic,
			})
			if p > prevProfile.BestP {
				prevProfile.BestP = p
			}
			if p >= params.MaxProbability {
				prevProfile.FirmDepTime = prevDep
				if w.Origin == departureStation && prevDep > departureMinTime {
					departureMinTime = prevDep
				}
			}
		}
	}

	e.result = &searchResult{stations: stations, departureStation: departureStation}
	return nil
}

// dominated reports whether a new candidate (p, startTime) is strictly
// dominated by the last entry appended to entries, per invariant 4: dropped
// when the last entry has both strictly higher probability and strictly
// later departure time. This is a weak, last-entry-only Pareto filter, by
// design (§9) — it is not a full frontier sweep.
func dominated(entries []StationEntry, p float64, startTime int32) bool {
	if len(entries) == 0 {
		return false
	}
	last := entries[len(entries)-1]
	return last.ArrivalProbability > p && last.Connection.StartTime > startTime
}
