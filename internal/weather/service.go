package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/packvision/internal/domain"
)

// Service resolves a destination and asks the primary provider first,
// falling back when it is absent or fails.
type Service struct {
	geocoder Geocoder
	primary  Provider
	fallback Provider
	log      *slog.Logger
}

// NewService wires the lookup chain. primary may be nil when no
// OpenWeatherMap key is configured; fallback must not be nil.
func NewService(geocoder Geocoder, primary, fallback Provider, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{geocoder: geocoder, primary: primary, fallback: fallback, log: log}
}

// ForDestination returns normalized weather for a free-text destination.
// It fails with domain.ErrDestinationNotFound when geocoding has no match
// and domain.ErrWeatherUnavailable for every other failure, including a
// geocoder that is down or slow.
func (s *Service) ForDestination(ctx context.Context, destination string) (domain.WeatherData, error) {
	place, err := s.geocoder.Geocode(ctx, destination)
	if errors.Is(err, domain.ErrDestinationNotFound) {
		return domain.WeatherData{}, fmt.Errorf("weather.Service.ForDestination: %w", err)
	}
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather.Service.ForDestination: geocode: %w: %v", domain.ErrWeatherUnavailable, err)
	}

	if s.primary != nil {
		data, err := s.primary.Forecast(ctx, place)
		if err == nil {
			return data, nil
		}
		s.log.WarnContext(ctx, "primary weather provider failed, falling back",
			slog.String("provider", s.primary.Name()),
			slog.String("location", place.Location()),
			slog.String("error", err.Error()),
		)
	}

	data, err := s.fallback.Forecast(ctx, place)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather.Service.ForDestination: %w: %v", domain.ErrWeatherUnavailable, err)
	}
	return data, nil
}
