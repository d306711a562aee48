package service_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/service"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G'}

func answerVision(s string) *mockVision {
	return &mockVision{vision: func(context.Context, string, []byte, string) (string, error) { return s, nil }}
}

func scanInput() service.ScanInput {
	trip := tripFixture()
	return service.ScanInput{
		Image:    base64.StdEncoding.EncodeToString(pngBytes),
		MimeType: "image/png",
		PackList: packListFixture(),
		Trip:     &trip,
	}
}

func TestScanService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*service.ScanInput)
		wantMsg string
	}{
		{"no image", func(in *service.ScanInput) { in.Image = "" }, "Geen afbeelding ontvangen."},
		{"empty pack list", func(in *service.ScanInput) { in.PackList = []domain.PackListCategory{} }, "Geen paklijst beschikbaar."},
		{"no trip", func(in *service.ScanInput) { in.Trip = nil }, "Geen reisgegevens beschikbaar."},
		{"too large", func(in *service.ScanInput) { in.Image = strings.Repeat("A", service.MaxImageBase64+4) }, "De afbeelding is te groot."},
		{"not base64", func(in *service.ScanInput) { in.Image = "%%%" }, "Ongeldige afbeelding."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := answerVision(`{}`)
			svc := service.NewScanService(newStore(t), ai, nil)
			in := scanInput()
			tt.mutate(&in)

			_, err := svc.Scan(context.Background(), in)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Zero(t, ai.calls)
		})
	}
}

func TestScanService_Scan_FillsDefaults(t *testing.T) {
	ai := answerVision(`{"recognizedItems":["T-shirt"],"summary":""}`)
	svc := service.NewScanService(newStore(t), ai, nil)

	got, err := svc.Scan(context.Background(), scanInput())

	require.NoError(t, err)
	assert.Equal(t, domain.ScanResult{
		RecognizedItems: []string{"T-shirt"},
		MissingItems:    []string{},
		Warnings:        []string{},
		Tips:            []string{},
		Summary:         "Analyse voltooid.",
	}, got)
	assert.Equal(t, pngBytes, ai.image)
	assert.Equal(t, "image/png", ai.mime)
	assert.Contains(t, ai.prompt, "  - T-shirt (5x)")
}

func TestScanService_Scan_RepairsTrailingGarbage(t *testing.T) {
	ai := answerVision(`{"missingItems":["Paspoort"],"summary":"Bijna klaar"} (einde analyse)`)
	svc := service.NewScanService(newStore(t), ai, nil)

	got, err := svc.Scan(context.Background(), scanInput())

	require.NoError(t, err)
	assert.Equal(t, []string{"Paspoort"}, got.MissingItems)
	assert.Equal(t, "Bijna klaar", got.Summary)
}

func TestScanService_Scan_Unparseable(t *testing.T) {
	svc := service.NewScanService(newStore(t), answerVision("geen json"), nil)

	_, err := svc.Scan(context.Background(), scanInput())

	require.ErrorIs(t, err, domain.ErrUnparseableResponse)
}

func TestScanService_Scan_DataURLAndDefaultMime(t *testing.T) {
	ai := answerVision(`{"summary":"ok"}`)
	svc := service.NewScanService(newStore(t), ai, nil)

	in := scanInput()
	in.MimeType = ""
	in.Image = "data:image/webp;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	_, err := svc.Scan(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", ai.mime)
	assert.Equal(t, pngBytes, ai.image)

	in = scanInput()
	in.MimeType = ""
	_, err = svc.Scan(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ai.mime)
}

func TestScanService_Scan_FallsBackToStoredState(t *testing.T) {
	s := newStore(t)
	seed(t, s, packListFixture())
	ai := answerVision(`{"summary":"ok"}`)
	svc := service.NewScanService(s, ai, nil)

	in := scanInput()
	in.PackList = nil
	in.Trip = nil
	_, err := svc.Scan(context.Background(), in)

	require.NoError(t, err)
	assert.Contains(t, ai.prompt, "Paspoort (1x)")
	assert.Contains(t, ai.prompt, "Barcelona, Spanje")
}
