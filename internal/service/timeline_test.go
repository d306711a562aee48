package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/service"
)

func TestTimelineService_Steps_SeedsDefaultsOnce(t *testing.T) {
	s := newStore(t)
	svc := service.NewTimelineService(s, nil)
	ctx := context.Background()

	steps, err := svc.Steps(ctx)
	require.NoError(t, err)
	assert.Len(t, steps, 14)

	stored, err := s.TimelineSteps(ctx)
	require.NoError(t, err)
	assert.Equal(t, steps, stored)

	_, err = svc.Toggle(ctx, "step-0")
	require.NoError(t, err)
	steps, err = svc.Steps(ctx)
	require.NoError(t, err)
	assert.True(t, steps[0].Completed)
}

func TestTimelineService_Toggle(t *testing.T) {
	svc := service.NewTimelineService(newStore(t), nil)
	ctx := context.Background()

	step, err := svc.Toggle(ctx, "step-3")
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Equal(t, "Accommodatie bevestigen", step.Title)

	step, err = svc.Toggle(ctx, "step-3")
	require.NoError(t, err)
	assert.False(t, step.Completed)

	_, err = svc.Toggle(ctx, "step-99")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimelineService_View(t *testing.T) {
	tests := []struct {
		name    string
		trip    bool
		now     time.Time
		toggle  []string
		wantDue []bool
		wantPct int
	}{
		{
			name:    "no trip nothing due",
			now:     time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
			wantDue: []bool{false, false, false, false},
		},
		{
			name:    "six days out",
			trip:    true,
			now:     time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
			wantDue: []bool{true, true, false, false},
		},
		{
			name:    "completed group is not due",
			trip:    true,
			now:     time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
			toggle:  []string{"step-0", "step-1", "step-2"},
			wantDue: []bool{false, true, false, false},
			wantPct: 21,
		},
		{
			name:    "half a day out rounds up",
			trip:    true,
			now:     time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
			wantDue: []bool{true, true, true, false},
		},
		{
			name:    "departure day",
			trip:    true,
			now:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			wantDue: []bool{true, true, true, true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()
			if tt.trip {
				require.NoError(t, s.SaveTrip(ctx, tripFixture()))
			}
			svc := service.NewTimelineService(s, fixedClock(tt.now))
			for _, id := range tt.toggle {
				_, err := svc.Toggle(ctx, id)
				require.NoError(t, err)
			}

			v, err := svc.View(ctx)

			require.NoError(t, err)
			require.Len(t, v.Groups, 4)
			var due []bool
			for _, g := range v.Groups {
				due = append(due, g.Due)
			}
			assert.Equal(t, tt.wantDue, due)
			assert.Equal(t, 14, v.Total)
			assert.Equal(t, len(tt.toggle), v.Completed)
			assert.Equal(t, tt.wantPct, v.Percent)
			assert.Equal(t, len(tt.toggle) == 3, v.Groups[0].Done)
		})
	}
}
