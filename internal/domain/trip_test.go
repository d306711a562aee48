package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/packvision/internal/domain"
)

func TestTripDays_CalendarDifference(t *testing.T) {
	assert.Equal(t, 7, domain.TripDays("2024-06-01", "2024-06-08"))
}

func TestTripDays_IgnoresTimeOfDay(t *testing.T) {
	// Only the date part counts; a late departure does not shorten the trip.
	assert.Equal(t, 7, domain.TripDays("2024-06-01T23:00:00Z", "2024-06-08T01:00:00Z"))
}

func TestTripDays_AcrossDSTAndMonths(t *testing.T) {
	assert.Equal(t, 31, domain.TripDays("2024-03-15", "2024-04-15"))
}

func TestTripDays_ReturnBeforeDeparture(t *testing.T) {
	assert.Equal(t, -2, domain.TripDays("2024-06-10", "2024-06-08"))
}

func TestTripDays_Unparseable(t *testing.T) {
	assert.Equal(t, 0, domain.TripDays("", "2024-06-08"))
	assert.Equal(t, 0, domain.TripDays("2024-06-01", "soon"))
}

func TestDaysUntil_RoundsUp(t *testing.T) {
	now := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

	days, ok := domain.DaysUntil("2024-06-01", now)

	assert.True(t, ok)
	assert.Equal(t, 2, days) // 1.5 days rounds up
}

func TestDaysUntil_Invalid(t *testing.T) {
	_, ok := domain.DaysUntil("", time.Now())
	assert.False(t, ok)
}

func TestTripDetails_Normalize_ClearsFrequencyWithoutLaundry(t *testing.T) {
	trip := domain.TripDetails{Laundry: domain.LaundryOption{Available: false, Frequency: 3}}

	trip.Normalize()

	assert.Equal(t, 0, trip.Laundry.Frequency)
}

func TestTripDetails_Normalize_KeepsFrequencyWithLaundry(t *testing.T) {
	trip := domain.TripDetails{Laundry: domain.LaundryOption{Available: true, Frequency: 2}}

	trip.Normalize()

	assert.Equal(t, 2, trip.Laundry.Frequency)
}

func TestTripDetails_WeatherQuery(t *testing.T) {
	assert.Equal(t, "Lissabon,Portugal", domain.TripDetails{Destination: " Lissabon ", Country: "Portugal"}.WeatherQuery())
	assert.Equal(t, "Lissabon", domain.TripDetails{Destination: "Lissabon"}.WeatherQuery())
}

func TestTripType_Valid(t *testing.T) {
	assert.True(t, domain.TripTypeCitytrip.Valid())
	assert.False(t, domain.TripType("cruise").Valid())
	assert.Equal(t, "Backpacken", domain.TripTypeBackpacking.Label())
}
