package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/packvision/internal/store"
)

// TravelerService keeps the names of the people on the trip.
type TravelerService struct {
	store *store.Store
}

// NewTravelerService constructs a TravelerService.
func NewTravelerService(s *store.Store) *TravelerService {
	return &TravelerService{store: s}
}

// Names returns the stored names.
func (s *TravelerService) Names(ctx context.Context) ([]string, error) {
	names, err := s.store.TravelerNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelerService.Names: %w", err)
	}
	return names, nil
}

// Replace stores names trimmed, with blank entries dropped.
func (s *TravelerService) Replace(ctx context.Context, names []string) ([]string, error) {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if err := s.store.SaveTravelerNames(ctx, clean); err != nil {
		return nil, fmt.Errorf("service.TravelerService.Replace: %w", err)
	}
	return clean, nil
}
