// Package handler implements the HTTP handlers for the packvision API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (health.go, trip.go, etc.) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/middleware"
	"github.com/pkordes/packvision/internal/service"
)

// Limits on the luggage scan route.
const (
	ScanBodyLimit = 20 << 20
	ScanTimeout   = 60 * time.Second
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or the providers.
type TripServicer interface {
	Submit(ctx context.Context, trip domain.TripDetails, force bool) (service.TripState, error)
	Current(ctx context.Context) (service.TripState, error)
	Weather(ctx context.Context, destination string) (domain.WeatherData, error)
}

// PackListServicer defines the pack list operations.
type PackListServicer interface {
	Generate(ctx context.Context, in service.GenerateInput) ([]domain.PackListCategory, error)
	GenerateForCurrentTrip(ctx context.Context) ([]domain.PackListCategory, error)
	Get(ctx context.Context) ([]domain.PackListCategory, error)
	Replace(ctx context.Context, list []domain.PackListCategory) ([]domain.PackListCategory, error)
	Toggle(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error)
	AddItem(ctx context.Context, categoryIndex int, name string, quantity int) ([]domain.PackListCategory, error)
	RemoveItem(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error)
	Progress(ctx context.Context) (domain.PackProgress, error)
	ExportText(ctx context.Context) (string, error)
	ExportCSV(ctx context.Context) ([]domain.ExportRow, string, error)
}

// Scanner compares a luggage photo with the pack list.
type Scanner interface {
	Scan(ctx context.Context, in service.ScanInput) (domain.ScanResult, error)
}

// VaccinationAdvisor returns vaccination advice per country.
type VaccinationAdvisor interface {
	ForCountry(ctx context.Context, country string) (domain.VaccinationInfo, error)
}

// PersonalItemServicer defines the personal item operations.
type PersonalItemServicer interface {
	List(ctx context.Context) ([]domain.PersonalItem, error)
	Add(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error)
	Update(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error)
	Remove(ctx context.Context, id string) error
	Suggestions(ctx context.Context, category domain.PersonalItemCategory) ([]service.SuggestionGroup, error)
}

// SavedTripServicer defines the trip template operations.
type SavedTripServicer interface {
	List(ctx context.Context) ([]domain.SavedTrip, error)
	SaveCurrent(ctx context.Context) (domain.SavedTrip, error)
	Remove(ctx context.Context, id string) error
	Load(ctx context.Context, id string) (service.LoadedTemplate, error)
}

// TimelineServicer defines the preparation checklist operations.
type TimelineServicer interface {
	View(ctx context.Context) (service.TimelineView, error)
	Toggle(ctx context.Context, id string) (domain.TimelineStep, error)
}

// TravelerServicer defines the traveler name operations.
type TravelerServicer interface {
	Names(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, names []string) ([]string, error)
}

// DashboardServicer builds the dashboard summary.
type DashboardServicer interface {
	Summary(ctx context.Context) (service.Dashboard, error)
}

// Services bundles every dependency of Server.
type Services struct {
	Trips         TripServicer
	PackLists     PackListServicer
	Scanner       Scanner
	Vaccinations  VaccinationAdvisor
	PersonalItems PersonalItemServicer
	SavedTrips    SavedTripServicer
	Timeline      TimelineServicer
	Travelers     TravelerServicer
	Dashboard     DashboardServicer
}

// Server serves every API endpoint.
type Server struct {
	svc     Services
	openapi []byte
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies. openapi is
// served verbatim at /openapi.yaml.
func NewServer(svc Services, openapi []byte, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, openapi: openapi, log: log}
}

// RouterOptions configures the middleware around the routes.
type RouterOptions struct {
	CORSOrigins         []string
	AIRequestsPerMinute int
}

// Routes builds the chi router.
//
// Middleware is applied in order: RequestID → RealIP → SlogLogger →
// Recoverer → CORS. RealIP runs before the AI throttle so the limiter keys
// on the forwarded client address.
func (s *Server) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	throttle := middleware.NewAIRateLimiter(opts.AIRequestsPerMinute, errorBody(msgThrottled))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(throttle.Handler)
			r.Post("/generate-packlist", s.GeneratePackList)
			r.Get("/vaccinations", s.GetVaccinations)
			r.With(middleware.NewMaxBodySizeHandler(ScanBodyLimit, errorBody(msgScanBody))).
				Post("/scan-luggage", s.ScanLuggage)
		})

		r.Get("/weather", s.GetWeather)

		r.Get("/trip", s.GetTrip)
		r.Put("/trip", s.PutTrip)

		r.Route("/packlist", func(r chi.Router) {
			r.Get("/", s.GetPackList)
			r.Put("/", s.PutPackList)
			r.With(throttle.Handler).Post("/generate", s.GenerateStoredPackList)
			r.Get("/progress", s.GetPackProgress)
			r.Get("/export", s.GetExport)
			r.Post("/categories/{category}/items", s.AddPackItem)
			r.Delete("/categories/{category}/items/{itemID}", s.RemovePackItem)
			r.Post("/categories/{category}/items/{itemID}/toggle", s.TogglePackItem)
		})

		r.Route("/personal-items", func(r chi.Router) {
			r.Get("/", s.ListPersonalItems)
			r.Post("/", s.AddPersonalItem)
			r.Get("/suggestions", s.GetSuggestions)
			r.Put("/{id}", s.UpdatePersonalItem)
			r.Delete("/{id}", s.RemovePersonalItem)
		})

		r.Route("/saved-trips", func(r chi.Router) {
			r.Get("/", s.ListSavedTrips)
			r.Post("/", s.SaveCurrentTrip)
			r.Delete("/{id}", s.RemoveSavedTrip)
			r.Post("/{id}/load", s.LoadSavedTrip)
		})

		r.Get("/timeline", s.GetTimeline)
		r.Post("/timeline/{id}/toggle", s.ToggleTimelineStep)

		r.Get("/travelers", s.GetTravelers)
		r.Put("/travelers", s.PutTravelers)

		r.Get("/dashboard", s.GetDashboard)
	})

	return r
}
