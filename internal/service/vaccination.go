package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/prompt"
	"github.com/pkordes/packvision/internal/sanitize"
)

// VaccinationCacheTTL is how long advice for a country is reused.
const VaccinationCacheTTL = 24 * time.Hour

// VaccinationService asks the model for vaccination advice per country.
type VaccinationService struct {
	ai    TextGenerator
	cache *cache.Cache
	log   *slog.Logger
}

// NewVaccinationService constructs a VaccinationService with a per-country
// cache.
func NewVaccinationService(ai TextGenerator, log *slog.Logger) *VaccinationService {
	return &VaccinationService{
		ai:    ai,
		cache: cache.New(VaccinationCacheTTL, time.Hour),
		log:   orDefault(log),
	}
}

// ForCountry returns advice for country. Failures are not cached.
func (s *VaccinationService) ForCountry(ctx context.Context, country string) (domain.VaccinationInfo, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return domain.VaccinationInfo{}, fmt.Errorf("service.VaccinationService.ForCountry: %w", invalid("Land is vereist"))
	}

	key := strings.ToLower(country)
	if v, ok := s.cache.Get(key); ok {
		return v.(domain.VaccinationInfo), nil
	}

	p, err := prompt.Vaccinations(country)
	if err != nil {
		return domain.VaccinationInfo{}, fmt.Errorf("service.VaccinationService.ForCountry: %w", err)
	}

	answer, err := s.ai.Text(ctx, p)
	if err != nil {
		return domain.VaccinationInfo{}, fmt.Errorf("service.VaccinationService.ForCountry: %w", err)
	}

	var info domain.VaccinationInfo
	if err := sanitize.DecodeObjectStrict(answer, &info); err != nil {
		logUnparseable(ctx, s.log, "vaccinations", err)
		return domain.VaccinationInfo{}, fmt.Errorf("service.VaccinationService.ForCountry: %w", err)
	}
	if info.Required == nil {
		info.Required = []domain.VaccinationItem{}
	}
	if info.Recommended == nil {
		info.Recommended = []domain.VaccinationItem{}
	}

	s.cache.SetDefault(key, info)
	return info, nil
}
