package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/packvision/internal/domain"
)

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// Place is a geocoded destination.
type Place struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Location renders the place as "Name, Country".
func (p Place) Location() string {
	return p.Name + ", " + p.Country
}

// Geocoder resolves free text to a single place.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}

// OpenMeteoGeocoder resolves places with the Open-Meteo geocoding API. It
// needs no API key.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteoGeocoder returns a geocoder. An empty baseURL selects
// DefaultGeocodingURL; a nil client selects a client with a 15s timeout.
func NewOpenMeteoGeocoder(baseURL string, client *http.Client) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	if client == nil {
		client = defaultHTTPClient
	}
	return &OpenMeteoGeocoder{baseURL: baseURL, client: client}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode returns the best match for query, or domain.ErrDestinationNotFound
// when the API has no result.
func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	q := url.Values{}
	q.Set("name", query)
	q.Set("count", "1")
	q.Set("language", "nl")

	var body geocodeResponse
	status, err := getJSON(ctx, g.client, g.baseURL+"?"+q.Encode(), &body)
	if err != nil {
		return Place{}, fmt.Errorf("weather.OpenMeteoGeocoder.Geocode: %w", err)
	}
	if status != http.StatusOK {
		return Place{}, fmt.Errorf("weather.OpenMeteoGeocoder.Geocode: status %d", status)
	}
	if len(body.Results) == 0 {
		return Place{}, fmt.Errorf("weather.OpenMeteoGeocoder.Geocode %q: %w", query, domain.ErrDestinationNotFound)
	}

	r := body.Results[0]
	return Place{Name: r.Name, Country: r.Country, Latitude: r.Latitude, Longitude: r.Longitude}, nil
}

// sharedLookupTimeout bounds a coalesced lookup, which no longer follows
// the cancellation of the caller that started it.
const sharedLookupTimeout = 15 * time.Second

// CachedGeocoder memoizes successful lookups and collapses concurrent
// lookups of the same query into one upstream call. Failures are not cached.
type CachedGeocoder struct {
	next  Geocoder
	cache *cache.Cache
	group singleflight.Group
}

// NewCachedGeocoder wraps next with a cache whose entries live for ttl.
func NewCachedGeocoder(next Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if v, ok := c.cache.Get(key); ok {
		return v.(Place), nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		p, err := c.next.Geocode(lookupCtx, query)
		if err != nil {
			return nil, err
		}
		c.cache.SetDefault(key, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return Place{}, fmt.Errorf("weather.CachedGeocoder.Geocode: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return Place{}, res.Err
		}
		return res.Val.(Place), nil
	}
}
