package domain

import "fmt"

// TimelineStep is a preparation task due a number of days before departure.
type TimelineStep struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Icon                string `json:"icon"`
	DaysBeforeDeparture int    `json:"daysBeforeDeparture"`
	Completed           bool   `json:"completed"`
}

// TimelineGroup is a bucket of steps shown together on the dashboard.
type TimelineGroup struct {
	Label string         `json:"label"`
	Min   int            `json:"min"`
	Steps []TimelineStep `json:"steps"`
}

type stepTemplate struct {
	title, description, icon string
	days                     int
}

var defaultSteps = []stepTemplate{
	{"Reisverzekering afsluiten", "Vergelijk en sluit een reisverzekering af", "🛡️", 42},
	{"Vaccinaties regelen", "Check welke vaccinaties nodig zijn en maak een afspraak", "💉", 42},
	{"Visum aanvragen", "Controleer of je een visum nodig hebt en vraag deze aan", "📄", 35},
	{"Accommodatie bevestigen", "Controleer je boekingen en bewaar bevestigingen", "🏨", 21},
	{"Vervoer regelen", "Boek vluchten, treinen of huurauto", "🚗", 21},
	{"Paklijst genereren", "Genereer je AI paklijst op basis van weer en bestemming", "📋", 14},
	{"Persoonlijke items checken", "Controleer of al je must-haves zijn toegevoegd", "🎒", 14},
	{"Kleding wassen", "Was de kleding die je mee wilt nemen", "🧺", 7},
	{"Elektronica opladen", "Laad powerbank, laptop, camera en telefoon op", "🔋", 3},
	{"Kopieën documenten maken", "Maak foto's of kopieën van paspoort, ID en verzekeringspas", "📑", 3},
	{"Paklijst afvinken", "Loop je volledige paklijst door en vink alles af", "✅", 1},
	{"Koffer scannen", "Maak een foto van je spullen en laat AI checken", "📸", 1},
	{"Handbagage checken", "Zorg dat paspoort, telefoon, oplader en snacks bij de hand zijn", "👜", 1},
	{"Huis klaarmaken", "Planten water geven, post stoppen, sleutels regelen", "🏠", 1},
}

// DefaultTimelineSteps returns a fresh copy of the seed steps, none completed.
func DefaultTimelineSteps() []TimelineStep {
	out := make([]TimelineStep, len(defaultSteps))
	for i, s := range defaultSteps {
		out[i] = TimelineStep{
			ID:                  fmt.Sprintf("step-%d", i),
			Title:               s.title,
			Description:         s.description,
			Icon:                s.icon,
			DaysBeforeDeparture: s.days,
		}
	}
	return out
}

// GroupTimeline buckets steps by their day threshold, preserving order
// within each bucket.
func GroupTimeline(steps []TimelineStep) []TimelineGroup {
	groups := []TimelineGroup{
		{Label: "6+ weken van tevoren", Min: 30, Steps: []TimelineStep{}},
		{Label: "2-4 weken van tevoren", Min: 10, Steps: []TimelineStep{}},
		{Label: "1 week van tevoren", Min: 2, Steps: []TimelineStep{}},
		{Label: "Laatste dag", Min: 0, Steps: []TimelineStep{}},
	}
	for _, s := range steps {
		for i := range groups {
			if s.DaysBeforeDeparture >= groups[i].Min || i == len(groups)-1 {
				groups[i].Steps = append(groups[i].Steps, s)
				break
			}
		}
	}
	return groups
}
