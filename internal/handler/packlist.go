package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/packvision/internal/domain"
)

const (
	msgNoPackList     = "Geen paklijst gevonden."
	msgItemNotFound   = "Item of categorie niet gevonden."
	msgInvalidIndex   = "Ongeldige categorie."
	msgGenerateFailed = "Er ging iets mis bij het genereren van de paklijst. Probeer het opnieuw."
)

// addItemRequest is the body of POST .../categories/{category}/items.
type addItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// GetPackList handles GET /api/packlist.
func (s *Server) GetPackList(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.PackLists.Get(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgNoPackList})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// PutPackList handles PUT /api/packlist.
func (s *Server) PutPackList(w http.ResponseWriter, r *http.Request) {
	var list []domain.PackListCategory
	if err := decodeJSON(r, &list); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	saved, err := s.svc.PackLists.Replace(r.Context(), list)
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GenerateStoredPackList handles POST /api/packlist/generate: generate for
// the stored trip and save the result.
func (s *Server) GenerateStoredPackList(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.PackLists.GenerateForCurrentTrip(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{ai: true, internal: msgGenerateFailed})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetPackProgress handles GET /api/packlist/progress.
func (s *Server) GetPackProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.PackLists.Progress(r.Context())
	if err != nil {
		s.fail(w, r, err, failure{})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddPackItem handles POST /api/packlist/categories/{category}/items.
func (s *Server) AddPackItem(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIndex(r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidIndex)
		return
	}
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	list, err := s.svc.PackLists.AddItem(r.Context(), idx, req.Name, req.Quantity)
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgItemNotFound})
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// RemovePackItem handles DELETE /api/packlist/categories/{category}/items/{itemID}.
func (s *Server) RemovePackItem(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIndex(r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidIndex)
		return
	}
	list, err := s.svc.PackLists.RemoveItem(r.Context(), idx, chi.URLParam(r, "itemID"))
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgItemNotFound})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// TogglePackItem handles POST /api/packlist/categories/{category}/items/{itemID}/toggle.
func (s *Server) TogglePackItem(w http.ResponseWriter, r *http.Request) {
	idx, err := pathIndex(r, "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidIndex)
		return
	}
	list, err := s.svc.PackLists.Toggle(r.Context(), idx, chi.URLParam(r, "itemID"))
	if err != nil {
		s.fail(w, r, err, failure{notFound: msgItemNotFound})
		return
	}
	writeJSON(w, http.StatusOK, list)
}
