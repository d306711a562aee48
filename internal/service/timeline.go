package service

import (
	"context"
	"fmt"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/store"
)

// TimelineGroupView is a group with its status relative to the departure.
type TimelineGroupView struct {
	domain.TimelineGroup
	// Done is true when every step in the group is completed.
	Done bool `json:"done"`
	// Due is true when departure is at most Min days away and the group
	// is not done.
	Due bool `json:"due"`
}

// TimelineView is the preparation checklist as shown on the dashboard.
type TimelineView struct {
	Groups    []TimelineGroupView `json:"groups"`
	Completed int                 `json:"completed"`
	Total     int                 `json:"total"`
	Percent   int                 `json:"percent"`
}

// TimelineService manages the preparation checklist.
type TimelineService struct {
	store *store.Store
	clock Clock
}

// NewTimelineService constructs a TimelineService. A nil clock means time.Now.
func NewTimelineService(s *store.Store, clock Clock) *TimelineService {
	return &TimelineService{store: s, clock: clock}
}

// Steps returns the stored steps, seeding the default set on first use.
func (s *TimelineService) Steps(ctx context.Context) ([]domain.TimelineStep, error) {
	var steps []domain.TimelineStep
	err := s.store.WithLock(func() error {
		var err error
		steps, err = s.seeded(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.TimelineService.Steps: %w", err)
	}
	return steps, nil
}

// seeded must be called with the store lock held.
func (s *TimelineService) seeded(ctx context.Context) ([]domain.TimelineStep, error) {
	steps, err := s.store.TimelineSteps(ctx)
	if err != nil {
		return nil, err
	}
	if len(steps) > 0 {
		return steps, nil
	}
	steps = domain.DefaultTimelineSteps()
	if err := s.store.SaveTimelineSteps(ctx, steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// View groups the steps and marks which groups are done or due.
func (s *TimelineService) View(ctx context.Context) (TimelineView, error) {
	steps, err := s.Steps(ctx)
	if err != nil {
		return TimelineView{}, err
	}
	trip, err := s.store.Trip(ctx)
	if err != nil {
		return TimelineView{}, fmt.Errorf("service.TimelineService.View: %w", err)
	}
	return buildTimelineView(steps, trip, s.clock), nil
}

func buildTimelineView(steps []domain.TimelineStep, trip *domain.TripDetails, clock Clock) TimelineView {
	daysUntil, known := 0, false
	if trip != nil {
		daysUntil, known = domain.DaysUntil(trip.DepartureDate, clock.now())
	}

	var v TimelineView
	for _, g := range domain.GroupTimeline(steps) {
		gv := TimelineGroupView{TimelineGroup: g, Done: true}
		for _, st := range g.Steps {
			if !st.Completed {
				gv.Done = false
			}
		}
		gv.Due = known && daysUntil <= g.Min && !gv.Done && len(g.Steps) > 0
		v.Groups = append(v.Groups, gv)
	}
	for _, st := range steps {
		v.Total++
		if st.Completed {
			v.Completed++
		}
	}
	v.Percent = domain.Percent(v.Completed, v.Total)
	return v
}

// Toggle flips the completed flag of one step.
func (s *TimelineService) Toggle(ctx context.Context, id string) (domain.TimelineStep, error) {
	var out domain.TimelineStep
	err := s.store.WithLock(func() error {
		steps, err := s.seeded(ctx)
		if err != nil {
			return err
		}
		for i := range steps {
			if steps[i].ID == id {
				steps[i].Completed = !steps[i].Completed
				out = steps[i]
				return s.store.SaveTimelineSteps(ctx, steps)
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return domain.TimelineStep{}, fmt.Errorf("service.TimelineService.Toggle: %w", err)
	}
	return out, nil
}
