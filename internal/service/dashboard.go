package service

import (
	"context"
	"fmt"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/store"
)

// Dashboard summarizes the state of the current trip.
type Dashboard struct {
	Trip *domain.TripDetails `json:"trip"`
	// DaysUntilDeparture is nil when there is no trip or no valid date.
	DaysUntilDeparture *int                `json:"daysUntilDeparture"`
	TripDays           int                 `json:"tripDays"`
	Pack               domain.PackProgress `json:"pack"`
	Timeline           TimelineView        `json:"timeline"`
	SavedTrips         []domain.SavedTrip  `json:"savedTrips"`
	TravelerNames      []string            `json:"travelerNames"`
}

// DashboardService assembles the dashboard from the other stored documents.
type DashboardService struct {
	store    *store.Store
	timeline *TimelineService
	clock    Clock
}

// NewDashboardService constructs a DashboardService. A nil clock means time.Now.
func NewDashboardService(s *store.Store, timeline *TimelineService, clock Clock) *DashboardService {
	return &DashboardService{store: s, timeline: timeline, clock: clock}
}

// Summary returns the dashboard.
func (s *DashboardService) Summary(ctx context.Context) (Dashboard, error) {
	trip, err := s.store.Trip(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}
	list, err := s.store.PackList(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}
	steps, err := s.timeline.Steps(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}
	saved, err := s.store.SavedTrips(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}
	names, err := s.store.TravelerNames(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("service.DashboardService.Summary: %w", err)
	}

	d := Dashboard{
		Trip:          trip,
		Pack:          domain.Progress(list),
		Timeline:      buildTimelineView(steps, trip, s.clock),
		SavedTrips:    saved,
		TravelerNames: names,
	}
	if trip != nil {
		d.TripDays = trip.Days()
		if days, ok := domain.DaysUntil(trip.DepartureDate, s.clock.now()); ok {
			d.DaysUntilDeparture = &days
		}
	}
	return d, nil
}
