package weather_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/weather"
)

type mockGeocoder struct {
	geocode func(ctx context.Context, query string) (weather.Place, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (weather.Place, error) {
	return m.geocode(ctx, query)
}

var _ weather.Geocoder = (*mockGeocoder)(nil)

type mockProvider struct {
	name     string
	forecast func(ctx context.Context, p weather.Place) (domain.WeatherData, error)
	calls    int
}

func (m *mockProvider) Name() string { return m.name }
func (m *mockProvider) Forecast(ctx context.Context, p weather.Place) (domain.WeatherData, error) {
	m.calls++
	return m.forecast(ctx, p)
}

var _ weather.Provider = (*mockProvider)(nil)

func foundGeocoder() *mockGeocoder {
	return &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) { return barcelona, nil }}
}

func answering(name string, data domain.WeatherData) *mockProvider {
	return &mockProvider{name: name, forecast: func(context.Context, weather.Place) (domain.WeatherData, error) {
		return data, nil
	}}
}

func failing(name string) *mockProvider {
	return &mockProvider{name: name, forecast: func(context.Context, weather.Place) (domain.WeatherData, error) {
		return domain.WeatherData{}, errors.New(name + " down")
	}}
}

func TestService_PrimaryAnswers(t *testing.T) {
	primary := answering("owm", domain.WeatherData{Location: "from primary"})
	fallback := answering("om", domain.WeatherData{Location: "from fallback"})
	svc := weather.NewService(foundGeocoder(), primary, fallback, nil)

	got, err := svc.ForDestination(context.Background(), "Barcelona")

	require.NoError(t, err)
	assert.Equal(t, "from primary", got.Location)
	assert.Zero(t, fallback.calls)
}

func TestService_FallsBackWhenPrimaryFails(t *testing.T) {
	primary := failing("owm")
	fallback := answering("om", domain.WeatherData{Location: "from fallback"})
	svc := weather.NewService(foundGeocoder(), primary, fallback, nil)

	got, err := svc.ForDestination(context.Background(), "Barcelona")

	require.NoError(t, err)
	assert.Equal(t, "from fallback", got.Location)
	assert.Equal(t, 1, primary.calls)
}

func TestService_NoPrimaryUsesFallback(t *testing.T) {
	fallback := answering("om", domain.WeatherData{Location: "from fallback"})
	svc := weather.NewService(foundGeocoder(), nil, fallback, nil)

	got, err := svc.ForDestination(context.Background(), "Barcelona")

	require.NoError(t, err)
	assert.Equal(t, "from fallback", got.Location)
}

func TestService_AllProvidersFail(t *testing.T) {
	svc := weather.NewService(foundGeocoder(), failing("owm"), failing("om"), nil)

	_, err := svc.ForDestination(context.Background(), "Barcelona")

	require.ErrorIs(t, err, domain.ErrWeatherUnavailable)
}

func TestService_DestinationNotFound(t *testing.T) {
	geo := &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) {
		return weather.Place{}, domain.ErrDestinationNotFound
	}}
	fallback := answering("om", domain.WeatherData{})
	svc := weather.NewService(geo, nil, fallback, nil)

	_, err := svc.ForDestination(context.Background(), "Xyzzyland")

	require.ErrorIs(t, err, domain.ErrDestinationNotFound)
	assert.Zero(t, fallback.calls)
}

func TestService_GeocoderFailureIsWeatherUnavailable(t *testing.T) {
	geo := &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) {
		return weather.Place{}, errors.New("weather.OpenMeteoGeocoder.Geocode: status 429")
	}}
	fallback := answering("om", domain.WeatherData{})
	svc := weather.NewService(geo, nil, fallback, nil)

	_, err := svc.ForDestination(context.Background(), "Barcelona")

	require.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	assert.NotErrorIs(t, err, domain.ErrDestinationNotFound)
	assert.Zero(t, fallback.calls)
}

func TestCachedGeocoder_CachesSuccess(t *testing.T) {
	var calls atomic.Int32
	next := &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) {
		calls.Add(1)
		return barcelona, nil
	}}
	g := weather.NewCachedGeocoder(next, time.Hour)

	for _, q := range []string{"Barcelona", " barcelona ", "BARCELONA"} {
		p, err := g.Geocode(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, barcelona, p)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedGeocoder_DoesNotCacheFailure(t *testing.T) {
	var calls atomic.Int32
	next := &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) {
		calls.Add(1)
		return weather.Place{}, domain.ErrDestinationNotFound
	}}
	g := weather.NewCachedGeocoder(next, time.Hour)

	for range 2 {
		_, err := g.Geocode(context.Background(), "Xyzzyland")
		require.ErrorIs(t, err, domain.ErrDestinationNotFound)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedGeocoder_ConcurrentLookupsShareResult(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	next := &mockGeocoder{geocode: func(context.Context, string) (weather.Place, error) {
		calls.Add(1)
		<-release
		return barcelona, nil
	}}
	g := weather.NewCachedGeocoder(next, time.Hour)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := g.Geocode(context.Background(), "Barcelona")
			assert.NoError(t, err)
			assert.Equal(t, barcelona, p)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedGeocoder_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	next := &mockGeocoder{geocode: func(ctx context.Context, _ string) (weather.Place, error) {
		calls.Add(1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return weather.Place{}, err
		}
		return barcelona, nil
	}}
	g := weather.NewCachedGeocoder(next, time.Hour)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := g.Geocode(firstCtx, "Barcelona")
		firstErr <- err
	}()
	<-started

	second := make(chan weather.Place, 1)
	go func() {
		p, err := g.Geocode(context.Background(), "Barcelona")
		assert.NoError(t, err)
		second <- p
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Equal(t, barcelona, <-second)
	assert.Equal(t, int32(1), calls.Load())
}
