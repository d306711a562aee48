package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/service"
)

// User-facing messages.
const (
	msgThrottled     = "Te veel AI-verzoeken. Wacht even en probeer het opnieuw."
	msgScanBody      = "Verzoek te groot of ongeldig. Probeer een kleinere foto."
	msgBadJSON       = "Ongeldig verzoek."
	msgQuota         = "De AI is tijdelijk overladen (quota bereikt). Wacht een minuut en probeer het opnieuw."
	msgAPIKey        = "De Gemini API key is ongeldig of niet geconfigureerd."
	msgSafety        = "De AI kon deze afbeelding niet verwerken. Probeer een andere foto."
	msgUnprocessable = "De afbeelding kon niet worden verwerkt door de AI. Probeer een andere foto of verklein de afbeelding."
	msgTimeout       = "De AI deed er te lang over. Probeer het opnieuw of gebruik een kleinere foto."
	msgUnparseable   = "De AI gaf een ongeldig antwoord. Probeer het opnieuw."
	msgEmptyList     = "De AI genereerde een lege paklijst. Probeer het opnieuw."
	msgWeather       = "Serverfout bij ophalen weerdata. Probeer het later opnieuw."
	msgNotFound      = "Niet gevonden."
	msgInternal      = "Er ging iets mis. Probeer het opnieuw."
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func errorBody(message string) []byte {
	b, _ := json.Marshal(errorResponse{Error: message})
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// providerClass maps marker substrings in an upstream error to a response.
type providerClass struct {
	markers []string
	status  int
	message string
}

var providerClasses = []providerClass{
	{[]string{"429", "quota", "RESOURCE_EXHAUSTED"}, http.StatusTooManyRequests, msgQuota},
	{[]string{"API_KEY", "PERMISSION_DENIED"}, http.StatusUnauthorized, msgAPIKey},
	{[]string{"SAFETY"}, http.StatusBadRequest, msgSafety},
	{[]string{"Could not process", "INVALID_ARGUMENT"}, http.StatusBadRequest, msgUnprocessable},
	{[]string{"deadline", "timeout", "DEADLINE_EXCEEDED"}, http.StatusGatewayTimeout, msgTimeout},
}

// classifyProvider recognizes AI provider failures by their markers.
func classifyProvider(err error) (int, string, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, msgTimeout, true
	}
	text := err.Error()
	for _, c := range providerClasses {
		for _, m := range c.markers {
			if strings.Contains(text, m) {
				return c.status, c.message, true
			}
		}
	}
	return 0, "", false
}

// failure carries route-specific messages. Empty fields fall back to the
// generic message. ai enables the provider marker table, which only the
// routes that call the AI client may use.
type failure struct {
	ai          bool
	notFound    string
	unparseable string
	internal    string
}

func or(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// classify maps err to a status and a user-facing message.
func classify(err error, f failure) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, unwrapMessage(err, domain.ErrValidation)
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, unwrapMessage(err, domain.ErrConflict)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDestinationNotFound):
		return http.StatusNotFound, or(f.notFound, msgNotFound)
	case errors.Is(err, domain.ErrUnparseableResponse):
		return http.StatusInternalServerError, or(f.unparseable, msgUnparseable)
	case errors.Is(err, service.ErrEmptyPackList):
		return http.StatusInternalServerError, msgEmptyList
	case errors.Is(err, domain.ErrWeatherUnavailable):
		return http.StatusInternalServerError, msgWeather
	}
	if f.ai {
		if status, msg, ok := classifyProvider(err); ok {
			return status, msg
		}
	}
	return http.StatusInternalServerError, or(f.internal, msgInternal)
}

// fail writes the error response for err and logs server-side failures
// with the full error chain.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, f failure) {
	status, msg := classify(err, f)
	switch {
	case status >= 500:
		s.log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	case status == http.StatusTooManyRequests || status == http.StatusUnauthorized:
		s.log.WarnContext(r.Context(), "upstream rejected request", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	writeError(w, status, msg)
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.TripService.Submit: validation error: Minimaal 1 reiziger" → "Minimaal 1 reiziger"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// pathIndex binds an integer path parameter.
func pathIndex(r *http.Request, name string) (int, error) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return v, err
}

// optionalQuery binds an optional query parameter, returning the zero value
// when it is absent.
func optionalQuery[T any](r *http.Request, name string) (T, error) {
	var zero T
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	return *v, nil
}

func invalidParam(name string) string {
	return fmt.Sprintf("Ongeldige parameter %q.", name)
}
