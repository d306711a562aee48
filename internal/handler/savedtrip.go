package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const msgTemplateNotFound = "Opgeslagen reis niet gevonden."

// ListSavedTrips handles GET /api/saved-trips.
func (s *Server) ListSavedTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.svc.SavedTrips.List(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// SaveCurrentTrip handles POST /api/saved-trips.
func (s *Server) SaveCurrentTrip(w http.ResponseWriter, r *http.Request) {
	saved, err := s.svc.SavedTrips.SaveCurrent(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// RemoveSavedTrip handles DELETE /api/saved-trips/{id}.
func (s *Server) RemoveSavedTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SavedTrips.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, failure{notFound: msgTemplateNotFound})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LoadSavedTrip handles POST /api/saved-trips/{id}/load.
func (s *Server) LoadSavedTrip(w http.ResponseWriter, r *http.Request) {
	loaded, err := s.svc.SavedTrips.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgTemplateNotFound})
		return
	}
	writeJSON(w, http.StatusOK, loaded)
}
