package profile

import "sort"

// DefaultMaxProbabilityExtract and DefaultMaxJourneys are the extraction
// defaults named in §4.3.
const (
	DefaultMaxProbabilityExtract = 0.999
	DefaultMaxJourneys           = 8
)

// ExtractParams holds the tunables for BestJourneys.
type ExtractParams struct {
	MaxProbabilityExtract float64
	MaxJourneys           int
}

// ExtractOption customises a BestJourneys call.
type ExtractOption func(*ExtractParams)

// WithMaxProbabilityExtract overrides the probability ceiling at which
// extraction stops early.
func WithMaxProbabilityExtract(p float64) ExtractOption {
	return func(params *ExtractParams) { params.MaxProbabilityExtract = p }
}

// WithMaxJourneys overrides how many journeys are returned.
func WithMaxJourneys(n int) ExtractOption {
	return func(params *ExtractParams) { params.MaxJourneys = n }
}

// BestJourneys walks the most recent Find result backward from the
// departure station and returns a frontier of journeys: the first departs
// latest, each subsequent journey departs no later but arrives with
// strictly higher probability (§4.3). Returns an empty slice, not an
// error, when no journey meets min_probability.
func (e *Engine) BestJourneys(opts ...ExtractOption) []Journey {
	if e.result == nil {
		return nil
	}

	params := ExtractParams{
		MaxProbabilityExtract: DefaultMaxProbabilityExtract,
		MaxJourneys:           DefaultMaxJourneys,
	}
	for _, opt := range opts {
		opt(&params)
	}

	departure, ok := e.result.stations[e.result.departureStation]
	if !ok || len(departure.Entries) == 0 {
		return nil
	}

	candidates := make([]StationEntry, len(departure.Entries))
	copy(candidates, departure.Entries)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Connection.StartTime != candidates[j].Connection.StartTime {
			return candidates[i].Connection.StartTime > candidates[j].Connection.StartTime
		}
		return candidates[i].ArrivalProbability > candidates[j].ArrivalProbability
	})

	var journeys []Journey
	bestSoFar := 0.0
	for _, entry := range candidates {
		if bestSoFar >= params.MaxProbabilityExtract {
			break
		}
		if entry.ArrivalProbability <= bestSoFar {
			continue
		}
		bestSoFar = entry.ArrivalProbability
		journeys = append(journeys, Journey{Legs: e.reconstruct(entry)})
		if len(journeys) >= params.MaxJourneys {
			break
		}
	}
	return journeys
}

// reconstruct walks the entry chain starting from first, following
// NextIndex through S, and appends each leg's connection until an entry's
// connection carries the sentinel stop id (that terminating sentinel entry
// itself is not a leg).
func (e *Engine) reconstruct(first StationEntry) []Leg {
	legs := []Leg{{ArrivalProbability: first.ArrivalProbability, Connection: first.Connection}}

	station := first.Connection.StopID
	index := first.NextIndex
	for {
		next := e.result.stations[station].Entries[index]
		if next.Connection.StopID == SentinelStationID {
			break
		}
		legs = append(legs, Leg{ArrivalProbability: next.ArrivalProbability, Connection: next.Connection})
		station = next.Connection.StopID
		index = next.NextIndex
	}
	return legs
}
