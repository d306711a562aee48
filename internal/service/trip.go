package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/store"
)

// TripState is the current trip with the weather fetched for it.
type TripState struct {
	Trip    *domain.TripDetails `json:"trip"`
	Weather *domain.WeatherData `json:"weather"`
}

// TripService implements the trip entry flow.
type TripService struct {
	store   *store.Store
	weather WeatherFetcher
	log     *slog.Logger
}

// NewTripService constructs a TripService.
func NewTripService(s *store.Store, weather WeatherFetcher, log *slog.Logger) *TripService {
	return &TripService{store: s, weather: weather, log: orDefault(log)}
}

// ValidateTrip trims and checks a submitted trip in place.
// Returns domain.ErrValidation with a Dutch message when a rule is broken.
func ValidateTrip(trip *domain.TripDetails) error {
	trip.Destination = strings.TrimSpace(trip.Destination)
	trip.Country = strings.TrimSpace(trip.Country)

	if trip.Destination == "" || trip.DepartureDate == "" || trip.ReturnDate == "" {
		return invalid("Vul alle verplichte velden in")
	}
	if _, ok := domain.ParseDate(trip.DepartureDate); !ok {
		return invalid("Ongeldige vertrekdatum")
	}
	if _, ok := domain.ParseDate(trip.ReturnDate); !ok {
		return invalid("Ongeldige terugkomstdatum")
	}

	days := trip.Days()
	if days <= 0 {
		return invalid("De terugkomstdatum moet na de vertrekdatum liggen")
	}
	if days > domain.MaxTripDays {
		return invalid(fmt.Sprintf("Maximaal %d dagen per reis", domain.MaxTripDays))
	}

	if trip.TripType == "" {
		trip.TripType = domain.TripTypeVacation
	}
	if !trip.TripType.Valid() {
		return invalid("Onbekend type reis")
	}
	if trip.Travelers < 1 {
		return invalid("Minimaal 1 reiziger")
	}
	if trip.Laundry.Frequency < 0 {
		return invalid("Aantal wasbeurten kan niet negatief zijn")
	}
	trip.Normalize()
	return nil
}

// Submit validates trip, fetches weather for it and makes it the current
// trip. The stored pack list is cleared. When that list already has checked
// items the submit is refused with domain.ErrConflict unless force is set.
// Weather is fetched before anything is written, so a failed lookup leaves
// the stored state untouched.
func (s *TripService) Submit(ctx context.Context, trip domain.TripDetails, force bool) (TripState, error) {
	if err := ValidateTrip(&trip); err != nil {
		return TripState{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}

	if !force {
		if err := s.refuseCheckedList(ctx); err != nil {
			return TripState{}, fmt.Errorf("service.TripService.Submit: %w", err)
		}
	}

	w, err := s.weather.ForDestination(ctx, trip.WeatherQuery())
	if err != nil {
		return TripState{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}

	err = s.store.WithLock(func() error {
		// Items may have been checked while the weather was fetched.
		if !force {
			if err := s.refuseCheckedList(ctx); err != nil {
				return err
			}
		}
		if err := s.store.SaveTrip(ctx, trip); err != nil {
			return err
		}
		if err := s.store.SaveWeather(ctx, w); err != nil {
			return err
		}
		return s.store.ClearPackList(ctx)
	})
	if err != nil {
		return TripState{}, fmt.Errorf("service.TripService.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "trip submitted",
		slog.String("destination", trip.Destination),
		slog.Int("days", trip.Days()),
		slog.String("weather_location", w.Location),
	)
	return TripState{Trip: &trip, Weather: &w}, nil
}

// refuseCheckedList returns domain.ErrConflict when the stored pack list
// has checked items.
func (s *TripService) refuseCheckedList(ctx context.Context) error {
	list, err := s.store.PackList(ctx)
	if err != nil {
		return err
	}
	if p := domain.Progress(list); p.Checked > 0 {
		return fmt.Errorf("%w: De huidige paklijst heeft %d afgevinkte items", domain.ErrConflict, p.Checked)
	}
	return nil
}

// Current returns the stored trip and weather. Either may be nil.
func (s *TripService) Current(ctx context.Context) (TripState, error) {
	trip, err := s.store.Trip(ctx)
	if err != nil {
		return TripState{}, fmt.Errorf("service.TripService.Current: %w", err)
	}
	w, err := s.store.Weather(ctx)
	if err != nil {
		return TripState{}, fmt.Errorf("service.TripService.Current: %w", err)
	}
	return TripState{Trip: trip, Weather: w}, nil
}

// Weather looks up weather for a free-text destination without touching
// the stored state.
func (s *TripService) Weather(ctx context.Context, destination string) (domain.WeatherData, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return domain.WeatherData{}, fmt.Errorf("service.TripService.Weather: %w", invalid("Bestemming is vereist"))
	}
	w, err := s.weather.ForDestination(ctx, destination)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("service.TripService.Weather: %w", err)
	}
	return w, nil
}
