// Package weather looks up a destination and produces one normalized
// domain.WeatherData from whichever upstream provider answers: the
// OpenWeatherMap 5-day/3-hour forecast when a key is configured, Open-Meteo
// otherwise or on failure.
package weather

import (
	"math"
	"time"

	"github.com/pkordes/packvision/internal/domain"
)

// Entry is one sub-daily forecast record from a provider.
type Entry struct {
	Time        time.Time
	Temp        float64
	Description string
	Icon        string
	Rain        float64
}

// round rounds half up (towards +Inf), so -2.5 becomes -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round1 rounds half up to one decimal.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// MostCommon returns the most frequent value. On a tie the value seen
// first in values wins. Empty input yields "".
func MostCommon(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best, bestCount := values[0], 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

type dayBucket struct {
	date  string
	temps []float64
	descs []string
	icons []string
	rain  float64
}

// AggregateDaily reduces sub-daily entries to one WeatherDay per UTC
// calendar date, in order of first appearance. mapIcon converts the most
// frequent raw provider icon into the shared vocabulary.
func AggregateDaily(entries []Entry, mapIcon func(string) domain.Icon) []domain.WeatherDay {
	var buckets []*dayBucket
	byDate := make(map[string]*dayBucket)

	for _, e := range entries {
		date := e.Time.UTC().Format(domain.DateLayout)
		b, ok := byDate[date]
		if !ok {
			b = &dayBucket{date: date}
			byDate[date] = b
			buckets = append(buckets, b)
		}
		b.temps = append(b.temps, e.Temp)
		b.descs = append(b.descs, e.Description)
		b.icons = append(b.icons, e.Icon)
		b.rain += e.Rain
	}

	days := make([]domain.WeatherDay, 0, len(buckets))
	for _, b := range buckets {
		lo, hi := b.temps[0], b.temps[0]
		for _, t := range b.temps[1:] {
			lo = math.Min(lo, t)
			hi = math.Max(hi, t)
		}
		days = append(days, domain.WeatherDay{
			Date:        b.date,
			TempMin:     round(lo),
			TempMax:     round(hi),
			Description: MostCommon(b.descs),
			Icon:        mapIcon(MostCommon(b.icons)),
			Rain:        round1(b.rain),
		})
	}
	return days
}
