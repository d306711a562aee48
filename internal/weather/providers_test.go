package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/weather"
)

// serveJSON starts a test server that answers every request with status and
// body, and records the last query string.
func serveJSON(t *testing.T, status int, body string, lastQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastQuery != nil {
			*lastQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

var barcelona = weather.Place{Name: "Barcelona", Country: "Spanje", Latitude: 41.39, Longitude: 2.17}

func TestOpenMeteoGeocoder_Found(t *testing.T) {
	var query string
	srv := serveJSON(t, http.StatusOK,
		`{"results":[{"name":"Barcelona","country":"Spanje","latitude":41.39,"longitude":2.17}]}`, &query)

	g := weather.NewOpenMeteoGeocoder(srv.URL, srv.Client())
	p, err := g.Geocode(context.Background(), "Barcelona,Spanje")

	require.NoError(t, err)
	assert.Equal(t, barcelona, p)
	assert.Equal(t, "Barcelona, Spanje", p.Location())
	assert.Contains(t, query, "name=Barcelona%2CSpanje")
	assert.Contains(t, query, "count=1")
}

func TestOpenMeteoGeocoder_NotFound(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"generationtime_ms":0.5}`, nil)

	g := weather.NewOpenMeteoGeocoder(srv.URL, srv.Client())
	_, err := g.Geocode(context.Background(), "Xyzzyland")

	require.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestOpenMeteoGeocoder_UpstreamError(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, `{"error":true}`, nil)

	g := weather.NewOpenMeteoGeocoder(srv.URL, srv.Client())
	_, err := g.Geocode(context.Background(), "Barcelona")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDestinationNotFound)
}

const owmBody = `{
  "cod": "200",
  "message": 0,
  "list": [
    {"dt": 1751328000, "main": {"temp": 18.2, "humidity": 64}, "weather": [{"description": "onbewolkt", "icon": "01d"}], "wind": {"speed": 5}},
    {"dt": 1751338800, "main": {"temp": 22.4, "humidity": 60}, "weather": [{"description": "onbewolkt", "icon": "01d"}], "wind": {"speed": 4}, "rain": {"3h": 0.25}},
    {"dt": 1751349600, "main": {"temp": 20.0, "humidity": 58}, "weather": [{"description": "licht bewolkt", "icon": "02d"}], "wind": {"speed": 3}},
    {"dt": 1751414400, "main": {"temp": 15.6, "humidity": 80}, "weather": [{"description": "lichte regen", "icon": "10n"}], "wind": {"speed": 6}, "rain": {"3h": 1.2}}
  ]
}`

func TestOpenWeatherMap_Forecast(t *testing.T) {
	var query string
	srv := serveJSON(t, http.StatusOK, owmBody, &query)

	p := weather.NewOpenWeatherMap("secret", srv.URL, srv.Client())
	got, err := p.Forecast(context.Background(), barcelona)

	require.NoError(t, err)
	assert.Contains(t, query, "appid=secret")
	assert.Contains(t, query, "units=metric")
	assert.Equal(t, "Barcelona, Spanje", got.Location)

	assert.Equal(t, domain.CurrentWeather{
		Temp:        18,
		Description: "onbewolkt",
		Icon:        domain.IconSun,
		Humidity:    64,
		WindSpeed:   18,
	}, got.Current)

	require.Len(t, got.Forecast, 2)
	assert.Equal(t, domain.WeatherDay{
		Date: "2025-07-01", TempMin: 18, TempMax: 22,
		Description: "onbewolkt", Icon: domain.IconSun, Rain: 0.3,
	}, got.Forecast[0])
	assert.Equal(t, domain.WeatherDay{
		Date: "2025-07-02", TempMin: 16, TempMax: 16,
		Description: "lichte regen", Icon: domain.IconRain, Rain: 1.2,
	}, got.Forecast[1])
}

func TestOpenWeatherMap_ErrorCod(t *testing.T) {
	srv := serveJSON(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, nil)

	p := weather.NewOpenWeatherMap("wrong", srv.URL, srv.Client())
	_, err := p.Forecast(context.Background(), barcelona)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestOpenWeatherMap_EmptyList(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"cod":"200","list":[]}`, nil)

	p := weather.NewOpenWeatherMap("k", srv.URL, srv.Client())
	_, err := p.Forecast(context.Background(), barcelona)

	require.Error(t, err)
}

const openMeteoBody = `{
  "current": {"temperature_2m": 24.5, "relative_humidity_2m": 55, "weather_code": 2, "wind_speed_10m": 11.6},
  "daily": {
    "time": ["2025-07-01", "2025-07-02"],
    "weather_code": [0, 63],
    "temperature_2m_max": [28.4, 23.5],
    "temperature_2m_min": [19.5, 17.2],
    "precipitation_sum": [null, 4.46]
  }
}`

func TestOpenMeteo_Forecast(t *testing.T) {
	var query string
	srv := serveJSON(t, http.StatusOK, openMeteoBody, &query)

	p := weather.NewOpenMeteo(srv.URL, srv.Client())
	got, err := p.Forecast(context.Background(), barcelona)

	require.NoError(t, err)
	assert.Contains(t, query, "timezone=auto")
	assert.Contains(t, query, "forecast_days=7")

	assert.Equal(t, domain.CurrentWeather{
		Temp:        25,
		Description: "gedeeltelijk bewolkt",
		Icon:        domain.IconPartlyCloudy,
		Humidity:    55,
		WindSpeed:   12,
	}, got.Current)

	require.Len(t, got.Forecast, 2)
	assert.Equal(t, domain.WeatherDay{
		Date: "2025-07-01", TempMin: 20, TempMax: 28,
		Description: "onbewolkt", Icon: domain.IconSun, Rain: 0,
	}, got.Forecast[0])
	assert.Equal(t, domain.WeatherDay{
		Date: "2025-07-02", TempMin: 17, TempMax: 24,
		Description: "regen", Icon: domain.IconRain, Rain: 4.5,
	}, got.Forecast[1])
	assert.Equal(t, "Barcelona, Spanje", got.Location)
}

func TestOpenMeteo_ErrorBody(t *testing.T) {
	srv := serveJSON(t, http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range"}`, nil)

	p := weather.NewOpenMeteo(srv.URL, srv.Client())
	_, err := p.Forecast(context.Background(), barcelona)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude must be in range")
}
