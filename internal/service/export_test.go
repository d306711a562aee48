package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/service"
)

func TestShareText(t *testing.T) {
	list := packListFixture()
	list[0].Items[0].Checked = true

	got := service.ShareText(tripFixture(), list)

	want := "📋 Paklijst - Barcelona, Spanje\n" +
		"📅 7 dagen (1 juli - 8 juli)\n" +
		"━━━━━━━━━━━━━━━━\n\n" +
		"👕 Kleding\n" +
		"✅ T-shirt (5x) ⭐\n" +
		"⬜ Sokken (7x)\n\n" +
		"📄 Documenten & Geld\n" +
		"⬜ Paspoort ⭐\n\n" +
		"━━━━━━━━━━━━━━━━\n" +
		"📊 1/3 ingepakt (33%)\n" +
		"\n✨ Gemaakt met PackVision"
	assert.Equal(t, want, got)
}

func TestShareText_NoCountry(t *testing.T) {
	trip := tripFixture()
	trip.Country = ""

	got := service.ShareText(trip, nil)

	assert.Contains(t, got, "📋 Paklijst - Barcelona\n")
	assert.Contains(t, got, "📊 0/0 ingepakt (0%)")
}

func TestExportRows(t *testing.T) {
	rows := service.ExportRows(packListFixture())

	require.Len(t, rows, 3)
	assert.Equal(t, domain.ExportRow{
		Category: "Kleding", ItemID: "shirt", Item: "T-shirt", Quantity: 5, Essential: true,
	}, rows[0])
	assert.Equal(t, "Documenten & Geld", rows[2].Category)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "paklijst-new-york.csv", service.ExportFileName("New  York", "csv"))
	assert.Equal(t, "paklijst-reis.txt", service.ExportFileName("  ", "txt"))
}

func TestPackListService_ExportText_NeedsTripAndList(t *testing.T) {
	s := newStore(t)
	svc := service.NewPackListService(s, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.ExportText(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	seed(t, s, nil)
	_, err = svc.ExportText(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.SavePackList(ctx, packListFixture()))
	text, err := svc.ExportText(ctx)
	require.NoError(t, err)
	assert.Contains(t, text, "Paspoort")
}

func TestPackListService_ExportCSV(t *testing.T) {
	s := newStore(t)
	seed(t, s, packListFixture())
	svc := service.NewPackListService(s, nil, nil, nil)

	rows, name, err := svc.ExportCSV(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "paklijst-barcelona.csv", name)
}
