package profile

import "errors"

// Sentinel errors for the core's three rejection kinds. NoJourney is not a
// distinct error: an empty result from BestJourneys signals it.
var (
	// ErrUnknownStation is returned by Find when the departure or arrival
	// station appears neither as a start_id or stop_id in the connection
	// table nor as an endpoint or origin in the footpath index.
	ErrUnknownStation = errors.New("profile: unknown station")

	// ErrInvalidProbability is returned by Find when min_probability or
	// max_probability is outside [0,1], or min_probability > max_probability.
	ErrInvalidProbability = errors.New("profile: invalid probability bound")

	// ErrMalformedConnection is returned by New when a connection has
	// stop_time < start_time or a non-finite delay parameter.
	ErrMalformedConnection = errors.New("profile: malformed connection")
)
