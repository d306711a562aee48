package handler

import (
	"net/http"

	"github.com/pkordes/packvision/internal/domain"
)

// GetTrip handles GET /api/trip. Trip and weather are null when nothing
// was submitted yet.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.Trips.Current(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// PutTrip handles PUT /api/trip. It looks up the weather, stores trip and
// weather and clears the pack list. A list with checked items is only
// replaced with ?force=true.
func (s *Server) PutTrip(w http.ResponseWriter, r *http.Request) {
	force, err := optionalQuery[bool](r, "force")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidParam("force"))
		return
	}

	var trip domain.TripDetails
	if err := decodeJSON(r, &trip); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	state, err := s.svc.Trips.Submit(r.Context(), trip, force)
	if err != nil {
		s.fail(w, r, err, failure{notFound: destinationNotFound(trip.Destination)})
		return
	}
	writeJSON(w, http.StatusOK, state)
}
