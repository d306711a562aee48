package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/packvision/internal/domain"
)

const msgPersonalNotFound = "Item niet gevonden."

// ListPersonalItems handles GET /api/personal-items.
func (s *Server) ListPersonalItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.PersonalItems.List(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddPersonalItem handles POST /api/personal-items.
func (s *Server) AddPersonalItem(w http.ResponseWriter, r *http.Request) {
	var item domain.PersonalItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	created, err := s.svc.PersonalItems.Add(r.Context(), item)
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePersonalItem handles PUT /api/personal-items/{id}. The path id wins
// over any id in the body.
func (s *Server) UpdatePersonalItem(w http.ResponseWriter, r *http.Request) {
	var item domain.PersonalItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	item.ID = chi.URLParam(r, "id")

	updated, err := s.svc.PersonalItems.Update(r.Context(), item)
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgPersonalNotFound})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemovePersonalItem handles DELETE /api/personal-items/{id}.
func (s *Server) RemovePersonalItem(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.PersonalItems.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, failure{notFound: msgPersonalNotFound})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSuggestions handles GET /api/personal-items/suggestions?category=.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	category, err := optionalQuery[string](r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidParam("category"))
		return
	}
	groups, err := s.svc.PersonalItems.Suggestions(r.Context(), domain.PersonalItemCategory(category))
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
