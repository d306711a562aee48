package domain

import "time"

// MaxSavedTrips caps the number of stored trip templates.
const MaxSavedTrips = 10

// SavedTrip is a snapshot of a trip and its pack list, reusable as a
// template for a new trip.
type SavedTrip struct {
	ID       string             `json:"id"`
	SavedAt  time.Time          `json:"savedAt"`
	Trip     TripDetails        `json:"trip"`
	PackList []PackListCategory `json:"packList"`
}
