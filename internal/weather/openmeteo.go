package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/packvision/internal/domain"
)

// DefaultOpenMeteoURL is the keyless Open-Meteo forecast endpoint.
const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

const openMeteoForecastDays = 7

// OpenMeteo reads current conditions and a 7-day daily forecast from
// Open-Meteo. It needs no API key and serves as the fallback provider.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteo returns the keyless provider. An empty baseURL selects
// DefaultOpenMeteoURL.
func NewOpenMeteo(baseURL string, client *http.Client) *OpenMeteo {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	if client == nil {
		client = defaultHTTPClient
	}
	return &OpenMeteo{baseURL: baseURL, client: client}
}

func (o *OpenMeteo) Name() string { return "open-meteo" }

type openMeteoResponse struct {
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time             []string   `json:"time"`
		WeatherCode      []int      `json:"weather_code"`
		TemperatureMax   []float64  `json:"temperature_2m_max"`
		TemperatureMin   []float64  `json:"temperature_2m_min"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

func (o *OpenMeteo) Forecast(ctx context.Context, p Place) (domain.WeatherData, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(openMeteoForecastDays))

	var body openMeteoResponse
	status, err := getJSON(ctx, o.client, o.baseURL+"?"+q.Encode(), &body)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather.OpenMeteo.Forecast: %w", err)
	}
	if status != http.StatusOK || body.Error {
		return domain.WeatherData{}, fmt.Errorf("weather.OpenMeteo.Forecast: status %d: %s", status, body.Reason)
	}

	days := make([]domain.WeatherDay, 0, len(body.Daily.Time))
	for i, date := range body.Daily.Time {
		code := at(body.Daily.WeatherCode, i)
		var rain float64
		if r := at(body.Daily.PrecipitationSum, i); r != nil {
			rain = *r
		}
		days = append(days, domain.WeatherDay{
			Date:        date,
			TempMin:     round(at(body.Daily.TemperatureMin, i)),
			TempMax:     round(at(body.Daily.TemperatureMax, i)),
			Description: DescriptionFromWMOCode(code),
			Icon:        IconFromWMOCode(code),
			Rain:        round1(rain),
		})
	}

	cur := body.Current
	return domain.WeatherData{
		Current: domain.CurrentWeather{
			Temp:        round(cur.Temperature),
			Description: DescriptionFromWMOCode(cur.WeatherCode),
			Icon:        IconFromWMOCode(cur.WeatherCode),
			Humidity:    round(cur.Humidity),
			WindSpeed:   round(cur.WindSpeed),
		},
		Forecast: days,
		Location: p.Location(),
	}, nil
}
