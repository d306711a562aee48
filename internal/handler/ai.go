package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkordes/packvision/internal/service"
)

// GeneratePackList handles POST /api/generate-packlist. The result is
// returned without being stored.
func (s *Server) GeneratePackList(w http.ResponseWriter, r *http.Request) {
	var in service.GenerateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	list, err := s.svc.PackLists.Generate(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, failure{ai: true, internal: "Er ging iets mis bij het genereren van de paklijst. Probeer het opnieuw."})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ScanLuggage handles POST /api/scan-luggage.
func (s *Server) ScanLuggage(w http.ResponseWriter, r *http.Request) {
	var in service.ScanInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, msgScanBody)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ScanTimeout)
	defer cancel()

	res, err := s.svc.Scanner.Scan(ctx, in)
	if err != nil {
		s.fail(w, r, err, failure{
			ai:          true,
			unparseable: "De AI kon het resultaat niet correct formatteren. Probeer het opnieuw.",
			internal:    "Er ging iets mis bij het scannen. Probeer het opnieuw.",
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetVaccinations handles GET /api/vaccinations?country=.
func (s *Server) GetVaccinations(w http.ResponseWriter, r *http.Request) {
	country, err := optionalQuery[string](r, "country")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidParam("country"))
		return
	}

	info, err := s.svc.Vaccinations.ForCountry(r.Context(), country)
	if err != nil {
		s.fail(w, r, err, failure{ai: true, internal: "Kon vaccinatie-informatie niet ophalen."})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// GetWeather handles GET /api/weather?destination=. Nothing is stored.
func (s *Server) GetWeather(w http.ResponseWriter, r *http.Request) {
	destination, err := optionalQuery[string](r, "destination")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidParam("destination"))
		return
	}

	data, err := s.svc.Trips.Weather(r.Context(), destination)
	if err != nil {
		s.fail(w, r, err, failure{notFound: destinationNotFound(destination)})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func destinationNotFound(destination string) string {
	return fmt.Sprintf("Kon %q niet vinden. Controleer de spelling.", destination)
}
