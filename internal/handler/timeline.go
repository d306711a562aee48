package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetTimeline handles GET /api/timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Timeline.View(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ToggleTimelineStep handles POST /api/timeline/{id}/toggle.
func (s *Server) ToggleTimelineStep(w http.ResponseWriter, r *http.Request) {
	step, err := s.svc.Timeline.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, failure{notFound: "Stap niet gevonden."})
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// travelersBody is the body of GET and PUT /api/travelers.
type travelersBody struct {
	Names []string `json:"names"`
}

// GetTravelers handles GET /api/travelers.
func (s *Server) GetTravelers(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.Travelers.Names(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, travelersBody{Names: names})
}

// PutTravelers handles PUT /api/travelers.
func (s *Server) PutTravelers(w http.ResponseWriter, r *http.Request) {
	var body travelersBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	names, err := s.svc.Travelers.Replace(r.Context(), body.Names)
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, travelersBody{Names: names})
}

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard.Summary(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, d)
}
