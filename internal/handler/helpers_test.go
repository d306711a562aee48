package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/handler"
	"github.com/pkordes/packvision/internal/service"
)

// Hand-written test doubles. Set only the method fields a test needs.

type mockTrips struct {
	submit  func(ctx context.Context, trip domain.TripDetails, force bool) (service.TripState, error)
	current func(ctx context.Context) (service.TripState, error)
	weather func(ctx context.Context, destination string) (domain.WeatherData, error)
}

func (m *mockTrips) Submit(ctx context.Context, trip domain.TripDetails, force bool) (service.TripState, error) {
	return m.submit(ctx, trip, force)
}
func (m *mockTrips) Current(ctx context.Context) (service.TripState, error) { return m.current(ctx) }
func (m *mockTrips) Weather(ctx context.Context, destination string) (domain.WeatherData, error) {
	return m.weather(ctx, destination)
}

var _ handler.TripServicer = (*mockTrips)(nil)

type mockPackLists struct {
	generate        func(ctx context.Context, in service.GenerateInput) ([]domain.PackListCategory, error)
	generateCurrent func(ctx context.Context) ([]domain.PackListCategory, error)
	get             func(ctx context.Context) ([]domain.PackListCategory, error)
	replace         func(ctx context.Context, list []domain.PackListCategory) ([]domain.PackListCategory, error)
	toggle          func(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error)
	addItem         func(ctx context.Context, categoryIndex int, name string, quantity int) ([]domain.PackListCategory, error)
	removeItem      func(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error)
	progress        func(ctx context.Context) (domain.PackProgress, error)
	exportText      func(ctx context.Context) (string, error)
	exportCSV       func(ctx context.Context) ([]domain.ExportRow, string, error)
}

func (m *mockPackLists) Generate(ctx context.Context, in service.GenerateInput) ([]domain.PackListCategory, error) {
	return m.generate(ctx, in)
}
func (m *mockPackLists) GenerateForCurrentTrip(ctx context.Context) ([]domain.PackListCategory, error) {
	return m.generateCurrent(ctx)
}
func (m *mockPackLists) Get(ctx context.Context) ([]domain.PackListCategory, error) {
	return m.get(ctx)
}
func (m *mockPackLists) Replace(ctx context.Context, list []domain.PackListCategory) ([]domain.PackListCategory, error) {
	return m.replace(ctx, list)
}
func (m *mockPackLists) Toggle(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error) {
	return m.toggle(ctx, categoryIndex, itemID)
}
func (m *mockPackLists) AddItem(ctx context.Context, categoryIndex int, name string, quantity int) ([]domain.PackListCategory, error) {
	return m.addItem(ctx, categoryIndex, name, quantity)
}
func (m *mockPackLists) RemoveItem(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error) {
	return m.removeItem(ctx, categoryIndex, itemID)
}
func (m *mockPackLists) Progress(ctx context.Context) (domain.PackProgress, error) {
	return m.progress(ctx)
}
func (m *mockPackLists) ExportText(ctx context.Context) (string, error) { return m.exportText(ctx) }
func (m *mockPackLists) ExportCSV(ctx context.Context) ([]domain.ExportRow, string, error) {
	return m.exportCSV(ctx)
}

var _ handler.PackListServicer = (*mockPackLists)(nil)

type mockScanner struct {
	scan func(ctx context.Context, in service.ScanInput) (domain.ScanResult, error)
}

func (m *mockScanner) Scan(ctx context.Context, in service.ScanInput) (domain.ScanResult, error) {
	return m.scan(ctx, in)
}

var _ handler.Scanner = (*mockScanner)(nil)

type mockVaccinations struct {
	forCountry func(ctx context.Context, country string) (domain.VaccinationInfo, error)
}

func (m *mockVaccinations) ForCountry(ctx context.Context, country string) (domain.VaccinationInfo, error) {
	return m.forCountry(ctx, country)
}

var _ handler.VaccinationAdvisor = (*mockVaccinations)(nil)

type mockPersonalItems struct {
	list        func(ctx context.Context) ([]domain.PersonalItem, error)
	add         func(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error)
	update      func(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error)
	remove      func(ctx context.Context, id string) error
	suggestions func(ctx context.Context, category domain.PersonalItemCategory) ([]service.SuggestionGroup, error)
}

func (m *mockPersonalItems) List(ctx context.Context) ([]domain.PersonalItem, error) {
	return m.list(ctx)
}
func (m *mockPersonalItems) Add(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error) {
	return m.add(ctx, item)
}
func (m *mockPersonalItems) Update(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error) {
	return m.update(ctx, item)
}
func (m *mockPersonalItems) Remove(ctx context.Context, id string) error { return m.remove(ctx, id) }
func (m *mockPersonalItems) Suggestions(ctx context.Context, category domain.PersonalItemCategory) ([]service.SuggestionGroup, error) {
	return m.suggestions(ctx, category)
}

var _ handler.PersonalItemServicer = (*mockPersonalItems)(nil)

type mockSavedTrips struct {
	list        func(ctx context.Context) ([]domain.SavedTrip, error)
	saveCurrent func(ctx context.Context) (domain.SavedTrip, error)
	remove      func(ctx context.Context, id string) error
	load        func(ctx context.Context, id string) (service.LoadedTemplate, error)
}

func (m *mockSavedTrips) List(ctx context.Context) ([]domain.SavedTrip, error) { return m.list(ctx) }
func (m *mockSavedTrips) SaveCurrent(ctx context.Context) (domain.SavedTrip, error) {
	return m.saveCurrent(ctx)
}
func (m *mockSavedTrips) Remove(ctx context.Context, id string) error { return m.remove(ctx, id) }
func (m *mockSavedTrips) Load(ctx context.Context, id string) (service.LoadedTemplate, error) {
	return m.load(ctx, id)
}

var _ handler.SavedTripServicer = (*mockSavedTrips)(nil)

type mockTimeline struct {
	view   func(ctx context.Context) (service.TimelineView, error)
	toggle func(ctx context.Context, id string) (domain.TimelineStep, error)
}

func (m *mockTimeline) View(ctx context.Context) (service.TimelineView, error) { return m.view(ctx) }
func (m *mockTimeline) Toggle(ctx context.Context, id string) (domain.TimelineStep, error) {
	return m.toggle(ctx, id)
}

var _ handler.TimelineServicer = (*mockTimeline)(nil)

type mockTravelers struct {
	names   func(ctx context.Context) ([]string, error)
	replace func(ctx context.Context, names []string) ([]string, error)
}

func (m *mockTravelers) Names(ctx context.Context) ([]string, error) { return m.names(ctx) }
func (m *mockTravelers) Replace(ctx context.Context, names []string) ([]string, error) {
	return m.replace(ctx, names)
}

var _ handler.TravelerServicer = (*mockTravelers)(nil)

type mockDashboard struct {
	summary func(ctx context.Context) (service.Dashboard, error)
}

func (m *mockDashboard) Summary(ctx context.Context) (service.Dashboard, error) {
	return m.summary(ctx)
}

var _ handler.DashboardServicer = (*mockDashboard)(nil)

// ---- helpers ---------------------------------------------------------------

const testOpenAPI = "openapi: 3.0.3\n"

// newRouter wires a Server around svc into the real chi router, the same
// way cmd/api does.
func newRouter(svc handler.Services) http.Handler {
	return newRouterWith(svc, handler.RouterOptions{
		CORSOrigins:         []string{"http://localhost:3000"},
		AIRequestsPerMinute: 1000,
	})
}

func newRouterWith(svc handler.Services, opts handler.RouterOptions) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, []byte(testOpenAPI), log).Routes(opts)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func packList() []domain.PackListCategory {
	return []domain.PackListCategory{
		{Name: "Kleding", Icon: "👕", Items: []domain.PackListItem{
			{ID: "shirt", Name: "T-shirt", Quantity: 5, Essential: true},
		}},
	}
}

func tripFixture() domain.TripDetails {
	return domain.TripDetails{
		Destination:   "Barcelona",
		Country:       "Spanje",
		DepartureDate: "2025-07-01",
		ReturnDate:    "2025-07-08",
		TripType:      domain.TripTypeCitytrip,
		Travelers:     2,
	}
}
