// Package handler contains the HTTP request handlers for the journey
// planning API.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/antigravity/transit-profile/internal/cache"
	"github.com/antigravity/transit-profile/internal/profile"
)

// JourneyHandler serves journey searches over a fixed network snapshot
// held by the profile engine.
type JourneyHandler struct {
	cache     *cache.JourneyCache // optional, may be nil
	newEngine func() (*profile.Engine, error)
}

// NewJourneyHandler wires a handler to an engine factory and an optional
// result cache. newEngine is called once per request since Find mutates
// engine-local search state; the closure may capture an already-loaded
// (connections, footpaths) pair or, as main.go's does, load the pair from
// the repository on every call.
func NewJourneyHandler(journeyCache *cache.JourneyCache, newEngine func() (*profile.Engine, error)) *JourneyHandler {
	return &JourneyHandler{cache: journeyCache, newEngine: newEngine}
}

// Search handles GET /api/v1/journeys.
//
// Query parameters: departure_station, arrival_station, arrival_time
// (seconds since midnight), min_probability (0..1, default
// profile.DefaultMinProbability).
func (h *JourneyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	departure, err := parseStationID(q.Get("departure_station"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid departure_station"})
		return
	}
	arrival, err := parseStationID(q.Get("arrival_station"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid arrival_station"})
		return
	}
	arrivalTime, err := strconv.Atoi(q.Get("arrival_time"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid arrival_time"})
		return
	}

	minProbability := profile.DefaultMinProbability
	if raw := q.Get("min_probability"); raw != "" {
		minProbability, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid min_probability"})
			return
		}
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = cache.Key(departure, arrival, int32(arrivalTime), minProbability)
		if journeys, hit, err := h.cache.Get(r.Context(), cacheKey); err == nil && hit {
			writeJSON(w, http.StatusOK, journeys)
			return
		}
	}

	engine, err := h.newEngine()
	if err != nil {
		log.Printf("[handler] building engine: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	if err := engine.Find(departure, arrival, int32(arrivalTime), minProbability); err != nil {
		switch {
		case errors.Is(err, profile.ErrUnknownStation):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown_station"})
		case errors.Is(err, profile.ErrInvalidProbability):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_probability"})
		default:
			log.Printf("[handler] search error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
		return
	}

	journeys := engine.BestJourneys()

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), cacheKey, journeys); err != nil {
			log.Printf("[handler] caching journeys: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, journeys)
}

func parseStationID(raw string) (profile.StationID, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return profile.StationID(v), nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
