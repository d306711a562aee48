package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/repo"
	"github.com/pkordes/packvision/internal/service"
	"github.com/pkordes/packvision/internal/store"
)

// mockText is a hand-written test double for service.TextGenerator.
type mockText struct {
	text  func(ctx context.Context, prompt string) (string, error)
	calls int
	last  string
}

func (m *mockText) Text(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.last = prompt
	return m.text(ctx, prompt)
}

var _ service.TextGenerator = (*mockText)(nil)

func answerText(s string) *mockText {
	return &mockText{text: func(context.Context, string) (string, error) { return s, nil }}
}

// mockVision is a hand-written test double for service.VisionGenerator.
type mockVision struct {
	vision func(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
	calls  int
	image  []byte
	mime   string
	prompt string
}

func (m *mockVision) Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	m.calls++
	m.image, m.mime, m.prompt = image, mimeType, prompt
	return m.vision(ctx, prompt, image, mimeType)
}

var _ service.VisionGenerator = (*mockVision)(nil)

// mockWeather is a hand-written test double for service.WeatherFetcher.
type mockWeather struct {
	forDestination func(ctx context.Context, destination string) (domain.WeatherData, error)
	queries        []string
}

func (m *mockWeather) ForDestination(ctx context.Context, destination string) (domain.WeatherData, error) {
	m.queries = append(m.queries, destination)
	return m.forDestination(ctx, destination)
}

var _ service.WeatherFetcher = (*mockWeather)(nil)

func sunnyWeather() *mockWeather {
	return &mockWeather{forDestination: func(context.Context, string) (domain.WeatherData, error) {
		return weatherFixture(), nil
	}}
}

// ---- fixtures ---------------------------------------------------------------

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(repo.NewMemoryKV())
}

func fixedClock(ts time.Time) service.Clock {
	return func() time.Time { return ts }
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

func weatherFixture() domain.WeatherData {
	return domain.WeatherData{
		Current: domain.CurrentWeather{Temp: 24, Description: "zonnig", Icon: domain.IconSun, Humidity: 50, WindSpeed: 10},
		Forecast: []domain.WeatherDay{
			{Date: "2025-07-01", TempMin: 18, TempMax: 22, Description: "onbewolkt", Icon: domain.IconSun},
		},
		Location: "Barcelona, Spanje",
	}
}

func packListFixture() []domain.PackListCategory {
	return []domain.PackListCategory{
		{Name: "Kleding", Icon: "👕", Items: []domain.PackListItem{
			{ID: "shirt", Name: "T-shirt", Quantity: 5, Essential: true},
			{ID: "socks", Name: "Sokken", Quantity: 7},
		}},
		{Name: "Documenten & Geld", Icon: "📄", Items: []domain.PackListItem{
			{ID: "passport", Name: "Paspoort", Quantity: 1, Essential: true},
		}},
	}
}

// seed stores a trip, its weather and a pack list.
func seed(t *testing.T, s *store.Store, list []domain.PackListCategory) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.SaveTrip(ctx, tripFixture()))
	require.NoError(t, s.SaveWeather(ctx, weatherFixture()))
	if list != nil {
		require.NoError(t, s.SavePackList(ctx, list))
	}
}
