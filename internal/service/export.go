package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/packvision/internal/domain"
)

const shareRule = "━━━━━━━━━━━━━━━━"

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// dutchDate renders "2025-07-01" as "1 juli". Unparseable input is
// returned as is.
func dutchDate(s string) string {
	d, ok := domain.ParseDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d %s", d.Day(), dutchMonths[d.Month()-1])
}

// ShareText renders a pack list as the plain-text message users share with
// their travel companions.
func ShareText(trip domain.TripDetails, list []domain.PackListCategory) string {
	var b strings.Builder

	b.WriteString("📋 Paklijst - " + trip.Destination)
	if trip.Country != "" {
		b.WriteString(", " + trip.Country)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "📅 %d dagen (%s - %s)\n", trip.Days(), dutchDate(trip.DepartureDate), dutchDate(trip.ReturnDate))
	b.WriteString(shareRule + "\n\n")

	for _, c := range list {
		fmt.Fprintf(&b, "%s %s\n", c.Icon, c.Name)
		for _, it := range c.Items {
			check := "⬜"
			if it.Checked {
				check = "✅"
			}
			b.WriteString(check + " " + it.Name)
			if it.Quantity > 1 {
				fmt.Fprintf(&b, " (%dx)", it.Quantity)
			}
			if it.Essential {
				b.WriteString(" ⭐")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	p := domain.Progress(list)
	b.WriteString(shareRule + "\n")
	fmt.Fprintf(&b, "📊 %d/%d ingepakt (%d%%)\n", p.Checked, p.Total, p.Percent)
	b.WriteString("\n✨ Gemaakt met PackVision")
	return b.String()
}

// ExportRows flattens a pack list to one row per item.
func ExportRows(list []domain.PackListCategory) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, domain.Progress(list).Total)
	for _, c := range list {
		for _, it := range c.Items {
			rows = append(rows, domain.ExportRow{
				Category:  c.Name,
				ItemID:    it.ID,
				Item:      it.Name,
				Quantity:  it.Quantity,
				Essential: it.Essential,
				Checked:   it.Checked,
				Note:      it.Note,
			})
		}
	}
	return rows
}

// ExportText returns the share text for the stored trip and list.
// Returns domain.ErrNotFound when either is missing.
func (s *PackListService) ExportText(ctx context.Context) (string, error) {
	trip, list, err := s.tripAndList(ctx)
	if err != nil {
		return "", fmt.Errorf("service.PackListService.ExportText: %w", err)
	}
	return ShareText(*trip, list), nil
}

// ExportCSV returns the stored list as flat rows for CSV encoding, plus a
// file name derived from the destination.
func (s *PackListService) ExportCSV(ctx context.Context) ([]domain.ExportRow, string, error) {
	trip, list, err := s.tripAndList(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.PackListService.ExportCSV: %w", err)
	}
	return ExportRows(list), ExportFileName(trip.Destination, "csv"), nil
}

// ExportFileName builds "paklijst-<destination>.<ext>" with whitespace
// runs replaced by dashes.
func ExportFileName(destination, ext string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(destination)), "-")
	if slug == "" {
		slug = "reis"
	}
	return "paklijst-" + slug + "." + ext
}

func (s *PackListService) tripAndList(ctx context.Context) (*domain.TripDetails, []domain.PackListCategory, error) {
	trip, err := s.store.Trip(ctx)
	if err != nil {
		return nil, nil, err
	}
	if trip == nil {
		return nil, nil, fmt.Errorf("trip: %w", domain.ErrNotFound)
	}
	list, err := s.store.PackList(ctx)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		return nil, nil, fmt.Errorf("pack list: %w", domain.ErrNotFound)
	}
	return trip, list, nil
}
