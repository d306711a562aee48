package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/prompt"
	"github.com/pkordes/packvision/internal/sanitize"
	"github.com/pkordes/packvision/internal/store"
)

// MaxImageBase64 is the largest base64 image payload accepted, in characters.
const MaxImageBase64 = 15 * 1024 * 1024

// DefaultImageMIME is assumed when the client sends no mime type.
const DefaultImageMIME = "image/jpeg"

// ScanInput is a luggage photo with the list and trip to compare it to.
// PackList and Trip fall back to the stored state when omitted.
type ScanInput struct {
	Image    string                    `json:"image"`
	MimeType string                    `json:"mimeType"`
	PackList []domain.PackListCategory `json:"packList"`
	Trip     *domain.TripDetails       `json:"trip"`
}

// ScanService compares a luggage photo with the expected pack list.
type ScanService struct {
	store *store.Store
	ai    VisionGenerator
	log   *slog.Logger
}

// NewScanService constructs a ScanService.
func NewScanService(s *store.Store, ai VisionGenerator, log *slog.Logger) *ScanService {
	return &ScanService{store: s, ai: ai, log: orDefault(log)}
}

// decodeImage accepts plain base64 or a data URL and returns the bytes and
// the mime type, preferring the one embedded in a data URL.
func decodeImage(image, mimeType string) ([]byte, string, error) {
	if rest, ok := strings.CutPrefix(image, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", invalid("Ongeldige afbeelding.")
		}
		if m, _, _ := strings.Cut(header, ";"); m != "" {
			mimeType = m
		}
		image = data
	}
	if mimeType == "" {
		mimeType = DefaultImageMIME
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(image))
	if err != nil {
		return nil, "", invalid("Ongeldige afbeelding.")
	}
	return raw, mimeType, nil
}

// Scan validates the input, asks the vision model and default-fills the
// answer. The result is not stored.
func (s *ScanService) Scan(ctx context.Context, in ScanInput) (domain.ScanResult, error) {
	if in.Image == "" {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", invalid("Geen afbeelding ontvangen."))
	}

	if in.PackList == nil {
		list, err := s.store.PackList(ctx)
		if err != nil {
			return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
		}
		in.PackList = list
	}
	if len(in.PackList) == 0 {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", invalid("Geen paklijst beschikbaar. Genereer eerst een paklijst."))
	}

	if in.Trip == nil {
		trip, err := s.store.Trip(ctx)
		if err != nil {
			return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
		}
		in.Trip = trip
	}
	if in.Trip == nil {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", invalid("Geen reisgegevens beschikbaar."))
	}

	if len(in.Image) > MaxImageBase64 {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", invalid("De afbeelding is te groot. Gebruik een foto kleiner dan 10MB."))
	}

	img, mimeType, err := decodeImage(in.Image, in.MimeType)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
	}

	s.log.InfoContext(ctx, "scan request",
		slog.Int("image_kb", len(img)/1024),
		slog.String("mime", mimeType),
	)

	p, err := prompt.Scan(in.PackList, *in.Trip)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
	}

	answer, err := s.ai.Vision(ctx, p, img, mimeType)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
	}

	var res domain.ScanResult
	if err := sanitize.DecodeObject(answer, &res); err != nil {
		logUnparseable(ctx, s.log, "scan-luggage", err)
		return domain.ScanResult{}, fmt.Errorf("service.ScanService.Scan: %w", err)
	}
	return fillScanResult(res), nil
}

func fillScanResult(r domain.ScanResult) domain.ScanResult {
	for _, l := range []*[]string{&r.RecognizedItems, &r.MissingItems, &r.Warnings, &r.Tips} {
		if *l == nil {
			*l = []string{}
		}
	}
	if strings.TrimSpace(r.Summary) == "" {
		r.Summary = domain.DefaultScanSummary
	}
	return r
}
