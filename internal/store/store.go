// Package store gives typed access to the JSON documents kept in a
// repo.KVRepo. Every read fills in defaults, so callers never see a nil
// list where an empty one is meant.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/repo"
)

// Document keys. They match the keys the browser client uses for its own
// local storage so exported blobs stay interchangeable.
const (
	KeyPersonalItems = "packvision_personal_items"
	KeyTripDetails   = "packvision_trip_details"
	KeyPackList      = "packvision_pack_list"
	KeySavedTrips    = "packvision_saved_trips"
	KeyTimelineSteps = "packvision_timeline_steps"
	KeyTravelerNames = "packvision_traveler_names"
	KeyWeather       = "packvision_weather"
)

// Store is the typed State Store.
type Store struct {
	kv repo.KVRepo
	mu sync.Mutex
}

// New returns a Store over kv.
func New(kv repo.KVRepo) *Store {
	return &Store{kv: kv}
}

// WithLock runs fn while holding the store's write lock. Services use it
// around read-modify-write sequences so two requests in this process do
// not interleave their updates. Slow calls (AI, weather) belong outside fn.
func (s *Store) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// load decodes the document under key into v. found is false when nothing
// is stored. A document that is not valid JSON is an error.
func (s *Store) load(ctx context.Context, key string, v any) (found bool, err error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}

// PersonalItems returns the user's items, empty when none are stored.
func (s *Store) PersonalItems(ctx context.Context) ([]domain.PersonalItem, error) {
	var items []domain.PersonalItem
	if _, err := s.load(ctx, KeyPersonalItems, &items); err != nil {
		return nil, fmt.Errorf("store.Store.PersonalItems: %w", err)
	}
	if items == nil {
		items = []domain.PersonalItem{}
	}
	return items, nil
}

func (s *Store) SavePersonalItems(ctx context.Context, items []domain.PersonalItem) error {
	if items == nil {
		items = []domain.PersonalItem{}
	}
	if err := s.save(ctx, KeyPersonalItems, items); err != nil {
		return fmt.Errorf("store.Store.SavePersonalItems: %w", err)
	}
	return nil
}

// Trip returns the current trip, or nil when none was submitted.
func (s *Store) Trip(ctx context.Context) (*domain.TripDetails, error) {
	var trip domain.TripDetails
	found, err := s.load(ctx, KeyTripDetails, &trip)
	if err != nil {
		return nil, fmt.Errorf("store.Store.Trip: %w", err)
	}
	if !found {
		return nil, nil
	}
	trip.Normalize()
	return &trip, nil
}

// SaveTrip overwrites the current trip.
func (s *Store) SaveTrip(ctx context.Context, trip domain.TripDetails) error {
	trip.Normalize()
	if err := s.save(ctx, KeyTripDetails, trip); err != nil {
		return fmt.Errorf("store.Store.SaveTrip: %w", err)
	}
	return nil
}

// Weather returns the weather fetched for the current trip, or nil.
func (s *Store) Weather(ctx context.Context) (*domain.WeatherData, error) {
	var w domain.WeatherData
	found, err := s.load(ctx, KeyWeather, &w)
	if err != nil {
		return nil, fmt.Errorf("store.Store.Weather: %w", err)
	}
	if !found {
		return nil, nil
	}
	if w.Forecast == nil {
		w.Forecast = []domain.WeatherDay{}
	}
	return &w, nil
}

func (s *Store) SaveWeather(ctx context.Context, w domain.WeatherData) error {
	if err := s.save(ctx, KeyWeather, w); err != nil {
		return fmt.Errorf("store.Store.SaveWeather: %w", err)
	}
	return nil
}

// PackList returns the current pack list, or nil when none was generated.
func (s *Store) PackList(ctx context.Context) ([]domain.PackListCategory, error) {
	var list []domain.PackListCategory
	found, err := s.load(ctx, KeyPackList, &list)
	if err != nil {
		return nil, fmt.Errorf("store.Store.PackList: %w", err)
	}
	if !found {
		return nil, nil
	}
	if list == nil {
		list = []domain.PackListCategory{}
	}
	for i := range list {
		if list[i].Items == nil {
			list[i].Items = []domain.PackListItem{}
		}
	}
	return list, nil
}

func (s *Store) SavePackList(ctx context.Context, list []domain.PackListCategory) error {
	if list == nil {
		list = []domain.PackListCategory{}
	}
	if err := s.save(ctx, KeyPackList, list); err != nil {
		return fmt.Errorf("store.Store.SavePackList: %w", err)
	}
	return nil
}

// ClearPackList forgets the current pack list.
func (s *Store) ClearPackList(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyPackList); err != nil {
		return fmt.Errorf("store.Store.ClearPackList: %w", err)
	}
	return nil
}

// SavedTrips returns the templates, newest first.
func (s *Store) SavedTrips(ctx context.Context) ([]domain.SavedTrip, error) {
	var trips []domain.SavedTrip
	if _, err := s.load(ctx, KeySavedTrips, &trips); err != nil {
		return nil, fmt.Errorf("store.Store.SavedTrips: %w", err)
	}
	if trips == nil {
		trips = []domain.SavedTrip{}
	}
	return trips, nil
}

// SaveSavedTrips stores trips, keeping at most domain.MaxSavedTrips from
// the front of the slice.
func (s *Store) SaveSavedTrips(ctx context.Context, trips []domain.SavedTrip) error {
	if trips == nil {
		trips = []domain.SavedTrip{}
	}
	if len(trips) > domain.MaxSavedTrips {
		trips = trips[:domain.MaxSavedTrips]
	}
	if err := s.save(ctx, KeySavedTrips, trips); err != nil {
		return fmt.Errorf("store.Store.SaveSavedTrips: %w", err)
	}
	return nil
}

// AddSavedTrip puts t in front of the existing templates. When the list
// is full the oldest template is evicted.
func (s *Store) AddSavedTrip(ctx context.Context, t domain.SavedTrip) ([]domain.SavedTrip, error) {
	trips, err := s.SavedTrips(ctx)
	if err != nil {
		return nil, err
	}
	trips = append([]domain.SavedTrip{t}, trips...)
	if len(trips) > domain.MaxSavedTrips {
		trips = trips[:domain.MaxSavedTrips]
	}
	if err := s.SaveSavedTrips(ctx, trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// TimelineSteps returns the stored steps, empty when none are stored.
func (s *Store) TimelineSteps(ctx context.Context) ([]domain.TimelineStep, error) {
	var steps []domain.TimelineStep
	if _, err := s.load(ctx, KeyTimelineSteps, &steps); err != nil {
		return nil, fmt.Errorf("store.Store.TimelineSteps: %w", err)
	}
	if steps == nil {
		steps = []domain.TimelineStep{}
	}
	return steps, nil
}

func (s *Store) SaveTimelineSteps(ctx context.Context, steps []domain.TimelineStep) error {
	if steps == nil {
		steps = []domain.TimelineStep{}
	}
	if err := s.save(ctx, KeyTimelineSteps, steps); err != nil {
		return fmt.Errorf("store.Store.SaveTimelineSteps: %w", err)
	}
	return nil
}

// TravelerNames returns the names of the people travelling, possibly empty.
func (s *Store) TravelerNames(ctx context.Context) ([]string, error) {
	var names []string
	if _, err := s.load(ctx, KeyTravelerNames, &names); err != nil {
		return nil, fmt.Errorf("store.Store.TravelerNames: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *Store) SaveTravelerNames(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	if err := s.save(ctx, KeyTravelerNames, names); err != nil {
		return fmt.Errorf("store.Store.SaveTravelerNames: %w", err)
	}
	return nil
}
