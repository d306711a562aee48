// Package prompt renders the Dutch instructions sent to the model. The
// templates are embedded; the Go side only prepares the list sections.
package prompt

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkordes/packvision/internal/domain"
)

//go:embed *.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "*.tmpl"))

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("prompt.render %s: %w", name, err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ForecastLine renders one forecast day as "date: min-max°C, description",
// adding the rain total when there is any.
func ForecastLine(d domain.WeatherDay) string {
	line := fmt.Sprintf("%s: %d-%d°C, %s", d.Date, d.TempMin, d.TempMax, d.Description)
	if d.Rain > 0 {
		line += ", " + strconv.FormatFloat(d.Rain, 'f', -1, 64) + "mm regen"
	}
	return line
}

// PackList builds the generation prompt. Only personal items marked
// AlwaysBring are listed; the laundry section appears only when laundry is
// available.
func PackList(trip domain.TripDetails, weather domain.WeatherData, personal []domain.PersonalItem) (string, error) {
	forecast := make([]string, 0, len(weather.Forecast))
	for _, d := range weather.Forecast {
		forecast = append(forecast, ForecastLine(d))
	}

	var always []string
	for _, it := range personal {
		if it.AlwaysBring {
			always = append(always, fmt.Sprintf("- %s (%s)", it.Name, it.Category))
		}
	}

	return render("packlist.tmpl", struct {
		Trip     domain.TripDetails
		Weather  domain.WeatherData
		Days     int
		Forecast string
		Personal string
	}{
		Trip:     trip,
		Weather:  weather,
		Days:     trip.Days(),
		Forecast: strings.Join(forecast, "\n"),
		Personal: strings.Join(always, "\n"),
	})
}

// Scan builds the luggage photo prompt, listing the expected items per
// category with their quantities.
func Scan(list []domain.PackListCategory, trip domain.TripDetails) (string, error) {
	sections := make([]string, 0, len(list))
	for _, c := range list {
		lines := []string{c.Name + ":"}
		for _, it := range c.Items {
			lines = append(lines, fmt.Sprintf("  - %s (%dx)", it.Name, it.Quantity))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return render("scan.tmpl", struct {
		Trip     domain.TripDetails
		Days     int
		PackList string
	}{
		Trip:     trip,
		Days:     trip.Days(),
		PackList: strings.Join(sections, "\n\n"),
	})
}

// Vaccinations builds the vaccination advice prompt for a country.
func Vaccinations(country string) (string, error) {
	return render("vaccinations.tmpl", struct{ Country string }{Country: country})
}
