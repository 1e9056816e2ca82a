package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/antigravity/transit-profile/internal/repository"
)

// StationHandler serves station lookups used to resolve a human-entered
// name or a GPS fix into a station id before a journey search.
type StationHandler struct {
	stations *repository.StationRepository
}

func NewStationHandler(stations *repository.StationRepository) *StationHandler {
	return &StationHandler{stations: stations}
}

// ByName handles GET /api/v1/stations/by-name?name=...
func (h *StationHandler) ByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing name"})
		return
	}

	station, err := h.stations.ByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "station_not_found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// Nearest handles GET /api/v1/stations/nearest?lat=...&lon=...
func (h *StationHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid lat/lon"})
		return
	}

	station, distanceM, err := h.stations.Nearest(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no_stations"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station":    station,
		"distance_m": distanceM,
	})
}
