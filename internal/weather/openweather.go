package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkordes/packvision/internal/domain"
)

// DefaultOpenWeatherURL is the OpenWeatherMap 5-day/3-hour forecast endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/forecast"

// Provider produces normalized weather for a geocoded place.
type Provider interface {
	Name() string
	Forecast(ctx context.Context, p Place) (domain.WeatherData, error)
}

// OpenWeatherMap reads the 3-hourly forecast and folds it into daily
// entries. The first record doubles as the current conditions.
type OpenWeatherMap struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenWeatherMap returns a provider for apiKey. An empty baseURL selects
// DefaultOpenWeatherURL.
func NewOpenWeatherMap(apiKey, baseURL string, client *http.Client) *OpenWeatherMap {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if client == nil {
		client = defaultHTTPClient
	}
	return &OpenWeatherMap{apiKey: apiKey, baseURL: baseURL, client: client}
}

func (o *OpenWeatherMap) Name() string { return "openweathermap" }

type owmResponse struct {
	// Cod is "200" on success; some error bodies carry it as a number.
	Cod     any        `json:"cod"`
	Message any        `json:"message"`
	List    []owmEntry `json:"list"`
}

type owmEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain *struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
}

func (e owmEntry) description() (desc, icon string) {
	if len(e.Weather) == 0 {
		return "", ""
	}
	return e.Weather[0].Description, e.Weather[0].Icon
}

func codString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func (o *OpenWeatherMap) Forecast(ctx context.Context, p Place) (domain.WeatherData, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("appid", o.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "nl")

	var body owmResponse
	status, err := getJSON(ctx, o.client, o.baseURL+"?"+q.Encode(), &body)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather.OpenWeatherMap.Forecast: %w", err)
	}
	if cod := codString(body.Cod); status != http.StatusOK || cod != "200" {
		return domain.WeatherData{}, fmt.Errorf("weather.OpenWeatherMap.Forecast: status %d cod %q: %v", status, cod, body.Message)
	}
	if len(body.List) == 0 {
		return domain.WeatherData{}, errors.New("weather.OpenWeatherMap.Forecast: empty forecast list")
	}

	entries := make([]Entry, 0, len(body.List))
	for _, e := range body.List {
		desc, icon := e.description()
		var rain float64
		if e.Rain != nil {
			rain = e.Rain.ThreeHours
		}
		entries = append(entries, Entry{
			Time:        time.Unix(e.Dt, 0).UTC(),
			Temp:        e.Main.Temp,
			Description: desc,
			Icon:        icon,
			Rain:        rain,
		})
	}

	first := body.List[0]
	desc, icon := first.description()
	return domain.WeatherData{
		Current: domain.CurrentWeather{
			Temp:        round(first.Main.Temp),
			Description: desc,
			Icon:        IconFromOpenWeather(icon),
			Humidity:    round(first.Main.Humidity),
			WindSpeed:   round(first.Wind.Speed * 3.6),
		},
		Forecast: AggregateDaily(entries, IconFromOpenWeather),
		Location: p.Location(),
	}, nil
}
