// Package domain contains the core data types for the PackVision backend.
// This package has no external dependencies and is imported by every other
// internal package (repo, store, service, handler).
package domain

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the wire format of trip dates ("2006-01-02").
const DateLayout = "2006-01-02"

// MaxTripDays is the longest trip the trip form accepts.
const MaxTripDays = 60

// TripType classifies the kind of trip, which steers the generated list.
type TripType string

const (
	TripTypeVacation    TripType = "vacation"
	TripTypeBusiness    TripType = "business"
	TripTypeBackpacking TripType = "backpacking"
	TripTypeCitytrip    TripType = "citytrip"
)

// TripTypeLabels holds the Dutch display label of every trip type.
var TripTypeLabels = map[TripType]string{
	TripTypeVacation:    "Vakantie",
	TripTypeBusiness:    "Zakelijk",
	TripTypeBackpacking: "Backpacken",
	TripTypeCitytrip:    "Stedentrip",
}

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	_, ok := TripTypeLabels[t]
	return ok
}

// Label returns the Dutch label, or the raw value for unknown types.
func (t TripType) Label() string {
	if l, ok := TripTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// LaundryOption describes whether the traveller can wash clothes on the way.
// Frequency is the number of washes during the whole trip and is 0 whenever
// Available is false.
type LaundryOption struct {
	Available bool `json:"available"`
	Frequency int  `json:"frequency"`
}

// TripDetails is the trip the user entered. It is persisted as a single
// record and overwritten wholesale on every submit.
type TripDetails struct {
	Destination      string        `json:"destination"`
	Country          string        `json:"country"`
	DepartureDate    string        `json:"departureDate"`
	ReturnDate       string        `json:"returnDate"`
	TripType         TripType      `json:"tripType"`
	Travelers        int           `json:"travelers"`
	Laundry          LaundryOption `json:"laundry"`
	ShowVaccinations bool          `json:"showVaccinations"`
}

// Normalize enforces the laundry invariant in place.
func (t *TripDetails) Normalize() {
	if !t.Laundry.Available {
		t.Laundry.Frequency = 0
	}
}

// Days returns the inclusive span of the trip in calendar days.
func (t TripDetails) Days() int {
	return TripDays(t.DepartureDate, t.ReturnDate)
}

// WeatherQuery returns the geocoding query for the trip: "destination,country"
// when a country was entered, the bare destination otherwise.
func (t TripDetails) WeatherQuery() string {
	d := strings.TrimSpace(t.Destination)
	if c := strings.TrimSpace(t.Country); c != "" {
		return d + "," + c
	}
	return d
}

// ParseDate parses a trip date. Only the leading "2006-01-02" part is used,
// so full timestamps are accepted too. The result is midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// TripDays returns the number of calendar days between departure and return.
// A trip from 2024-06-01 to 2024-06-08 lasts 7 days. Unparseable dates give 0.
func TripDays(departure, ret string) int {
	dep, ok := ParseDate(departure)
	if !ok {
		return 0
	}
	end, ok := ParseDate(ret)
	if !ok {
		return 0
	}
	return int(end.Sub(dep).Hours() / 24)
}

// DaysUntil returns the number of days from now until date, rounded up.
// The second value is false when date cannot be parsed.
func DaysUntil(date string, now time.Time) (int, bool) {
	d, ok := ParseDate(date)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(d.Sub(now).Hours() / 24)), true
}
