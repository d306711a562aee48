package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/store"
)

// LoadedTemplate is the trip draft and pack list restored from a template.
type LoadedTemplate struct {
	Trip     domain.TripDetails        `json:"trip"`
	PackList []domain.PackListCategory `json:"packList"`
}

// SavedTripService keeps past trips as reusable templates.
type SavedTripService struct {
	store *store.Store
	clock Clock
}

// NewSavedTripService constructs a SavedTripService. A nil clock means time.Now.
func NewSavedTripService(s *store.Store, clock Clock) *SavedTripService {
	return &SavedTripService{store: s, clock: clock}
}

// List returns the templates, newest first.
func (s *SavedTripService) List(ctx context.Context) ([]domain.SavedTrip, error) {
	trips, err := s.store.SavedTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SavedTripService.List: %w", err)
	}
	return trips, nil
}

// SaveCurrent snapshots the current trip and a non-empty pack list. The
// oldest template is evicted once domain.MaxSavedTrips is reached.
func (s *SavedTripService) SaveCurrent(ctx context.Context) (domain.SavedTrip, error) {
	var saved domain.SavedTrip
	err := s.store.WithLock(func() error {
		trip, err := s.store.Trip(ctx)
		if err != nil {
			return err
		}
		if trip == nil {
			return invalid("Geen reisgegevens beschikbaar.")
		}
		list, err := s.store.PackList(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return invalid("Geen paklijst beschikbaar. Genereer eerst een paklijst.")
		}

		saved = domain.SavedTrip{
			ID:       uuid.NewString(),
			SavedAt:  s.clock.now().UTC(),
			Trip:     *trip,
			PackList: domain.ClonePackList(list),
		}
		_, err = s.store.AddSavedTrip(ctx, saved)
		return err
	})
	if err != nil {
		return domain.SavedTrip{}, fmt.Errorf("service.SavedTripService.SaveCurrent: %w", err)
	}
	return saved, nil
}

// Remove deletes a template.
func (s *SavedTripService) Remove(ctx context.Context, id string) error {
	err := s.store.WithLock(func() error {
		trips, err := s.store.SavedTrips(ctx)
		if err != nil {
			return err
		}
		kept := trips[:0]
		for _, t := range trips {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(trips) {
			return domain.ErrNotFound
		}
		return s.store.SaveSavedTrips(ctx, kept)
	})
	if err != nil {
		return fmt.Errorf("service.SavedTripService.Remove: %w", err)
	}
	return nil
}

// Load makes a template the current trip draft: its dates are cleared, every
// item is unchecked and the stored weather is kept until the trip is
// submitted again.
func (s *SavedTripService) Load(ctx context.Context, id string) (LoadedTemplate, error) {
	var out LoadedTemplate
	err := s.store.WithLock(func() error {
		trips, err := s.store.SavedTrips(ctx)
		if err != nil {
			return err
		}
		for _, t := range trips {
			if t.ID != id {
				continue
			}
			out.Trip = t.Trip
			out.Trip.DepartureDate = ""
			out.Trip.ReturnDate = ""
			out.PackList = domain.ClonePackList(t.PackList)
			if out.PackList == nil {
				out.PackList = []domain.PackListCategory{}
			}
			for ci := range out.PackList {
				for ii := range out.PackList[ci].Items {
					out.PackList[ci].Items[ii].Checked = false
				}
			}
			if err := s.store.SaveTrip(ctx, out.Trip); err != nil {
				return err
			}
			return s.store.SavePackList(ctx, out.PackList)
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return LoadedTemplate{}, fmt.Errorf("service.SavedTripService.Load: %w", err)
	}
	return out, nil
}
