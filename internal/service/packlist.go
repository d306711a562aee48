package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/prompt"
	"github.com/pkordes/packvision/internal/sanitize"
	"github.com/pkordes/packvision/internal/store"
)

// ErrEmptyPackList is returned when the model answered with a valid but
// empty list.
var ErrEmptyPackList = errors.New("AI generated an empty pack list")

// GeneratedItem is one item as the model wrote it.
type GeneratedItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Quantity  LenientInt  `json:"quantity"`
	Essential LenientBool `json:"essential"`
	Note      *string     `json:"note"`
}

// LenientInt decodes a JSON number or a numeric string. Anything else
// leaves it at zero instead of failing the whole answer.
type LenientInt int

func (n *LenientInt) UnmarshalJSON(b []byte) error {
	if f, err := strconv.ParseFloat(unquote(b), 64); err == nil {
		*n = LenientInt(f)
	}
	return nil
}

// LenientBool decodes a JSON boolean or a "true"/"false" string. Anything
// else leaves it false.
type LenientBool bool

func (v *LenientBool) UnmarshalJSON(b []byte) error {
	if parsed, err := strconv.ParseBool(unquote(b)); err == nil {
		*v = LenientBool(parsed)
	}
	return nil
}

func unquote(b []byte) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
}

// GeneratedCategory is one category as the model wrote it.
type GeneratedCategory struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Items []GeneratedItem `json:"items"`
}

// NormalizePackList applies the default-fill table to a decoded model
// answer: missing category names and icons get "Overig" and 📦, missing
// item ids get "{category}-{index}-{millis}", names default to "Item",
// quantities below 1 or unreadable become 1, essential defaults to false
// and every item starts unchecked. Ids are made unique within the list.
func NormalizePackList(raw []GeneratedCategory, millis int64) []domain.PackListCategory {
	seen := make(map[string]bool)
	out := make([]domain.PackListCategory, 0, len(raw))

	for _, rc := range raw {
		cat := domain.PackListCategory{
			Name:  strings.TrimSpace(rc.Name),
			Icon:  strings.TrimSpace(rc.Icon),
			Items: make([]domain.PackListItem, 0, len(rc.Items)),
		}
		if cat.Name == "" {
			cat.Name = domain.DefaultCategoryName
		}
		if cat.Icon == "" {
			cat.Icon = domain.DefaultCategoryIcon
		}

		for i, ri := range rc.Items {
			item := domain.PackListItem{
				ID:        strings.TrimSpace(ri.ID),
				Name:      strings.TrimSpace(ri.Name),
				Quantity:  int(ri.Quantity),
				Essential: bool(ri.Essential),
			}
			fallback := fmt.Sprintf("%s-%d-%d", cat.Name, i, millis)
			if item.ID == "" || seen[item.ID] {
				item.ID = fallback
			}
			for n := 2; seen[item.ID]; n++ {
				item.ID = fallback + "-" + strconv.Itoa(n)
			}
			seen[item.ID] = true

			if item.Name == "" {
				item.Name = domain.DefaultItemName
			}
			if item.Quantity < 1 {
				item.Quantity = 1
			}
			if ri.Note != nil {
				item.Note = *ri.Note
			}
			cat.Items = append(cat.Items, item)
		}
		out = append(out, cat)
	}
	return out
}

// GenerateInput is what the stateless generation endpoint receives.
type GenerateInput struct {
	Trip          *domain.TripDetails   `json:"trip"`
	Weather       *domain.WeatherData   `json:"weather"`
	PersonalItems []domain.PersonalItem `json:"personalItems"`
}

// PackListService generates and edits the pack list.
type PackListService struct {
	store *store.Store
	ai    TextGenerator
	clock Clock
	log   *slog.Logger
}

// NewPackListService constructs a PackListService. A nil clock means time.Now.
func NewPackListService(s *store.Store, ai TextGenerator, clock Clock, log *slog.Logger) *PackListService {
	return &PackListService{store: s, ai: ai, clock: clock, log: orDefault(log)}
}

// Generate asks the model for a pack list. It does not touch the store.
func (s *PackListService) Generate(ctx context.Context, in GenerateInput) ([]domain.PackListCategory, error) {
	if in.Trip == nil {
		return nil, fmt.Errorf("service.PackListService.Generate: %w", invalid("Reisgegevens zijn vereist"))
	}
	if in.Weather == nil {
		return nil, fmt.Errorf("service.PackListService.Generate: %w", invalid("Weerdata is vereist. Haal eerst het weer op."))
	}

	p, err := prompt.PackList(*in.Trip, *in.Weather, in.PersonalItems)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.Generate: %w", err)
	}

	answer, err := s.ai.Text(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.Generate: %w", err)
	}

	var raw []GeneratedCategory
	if err := sanitize.DecodeArray(answer, &raw); err != nil {
		logUnparseable(ctx, s.log, "generate-packlist", err)
		return nil, fmt.Errorf("service.PackListService.Generate: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("service.PackListService.Generate: %w", ErrEmptyPackList)
	}

	list := NormalizePackList(raw, s.clock.now().UnixMilli())
	s.log.InfoContext(ctx, "pack list generated",
		slog.String("destination", in.Trip.Destination),
		slog.Int("categories", len(list)),
		slog.Int("items", domain.Progress(list).Total),
	)
	return list, nil
}

// GenerateForCurrentTrip generates a list for the stored trip, weather and
// personal items, and stores it as the current list.
func (s *PackListService) GenerateForCurrentTrip(ctx context.Context) ([]domain.PackListCategory, error) {
	trip, err := s.store.Trip(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.GenerateForCurrentTrip: %w", err)
	}
	w, err := s.store.Weather(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.GenerateForCurrentTrip: %w", err)
	}
	personal, err := s.store.PersonalItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.GenerateForCurrentTrip: %w", err)
	}

	list, err := s.Generate(ctx, GenerateInput{Trip: trip, Weather: w, PersonalItems: personal})
	if err != nil {
		return nil, err
	}

	if err := s.store.WithLock(func() error { return s.store.SavePackList(ctx, list) }); err != nil {
		return nil, fmt.Errorf("service.PackListService.GenerateForCurrentTrip: %w", err)
	}
	return list, nil
}

// Get returns the stored list. Returns domain.ErrNotFound when no list exists.
func (s *PackListService) Get(ctx context.Context) ([]domain.PackListCategory, error) {
	list, err := s.store.PackList(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.Get: %w", err)
	}
	if list == nil {
		return nil, fmt.Errorf("service.PackListService.Get: %w", domain.ErrNotFound)
	}
	return list, nil
}

// Replace overwrites the stored list with a client-edited one. Ids must be
// unique and names non-empty.
func (s *PackListService) Replace(ctx context.Context, list []domain.PackListCategory) ([]domain.PackListCategory, error) {
	seen := make(map[string]bool)
	for ci := range list {
		c := &list[ci]
		if strings.TrimSpace(c.Name) == "" {
			c.Name = domain.DefaultCategoryName
		}
		if c.Icon == "" {
			c.Icon = domain.DefaultCategoryIcon
		}
		if c.Items == nil {
			c.Items = []domain.PackListItem{}
		}
		for _, it := range c.Items {
			if it.ID == "" || seen[it.ID] {
				return nil, fmt.Errorf("service.PackListService.Replace: %w", invalid("Elk item moet een uniek id hebben"))
			}
			seen[it.ID] = true
			if strings.TrimSpace(it.Name) == "" {
				return nil, fmt.Errorf("service.PackListService.Replace: %w", invalid("Item naam is vereist"))
			}
			if it.Quantity < 1 {
				return nil, fmt.Errorf("service.PackListService.Replace: %w", invalid("Aantal moet minimaal 1 zijn"))
			}
		}
	}

	if err := s.store.WithLock(func() error { return s.store.SavePackList(ctx, list) }); err != nil {
		return nil, fmt.Errorf("service.PackListService.Replace: %w", err)
	}
	return list, nil
}

// mutate loads the list, applies fn and saves the result under the store lock.
func (s *PackListService) mutate(ctx context.Context, fn func(list []domain.PackListCategory) ([]domain.PackListCategory, error)) ([]domain.PackListCategory, error) {
	var out []domain.PackListCategory
	err := s.store.WithLock(func() error {
		list, err := s.store.PackList(ctx)
		if err != nil {
			return err
		}
		if list == nil {
			return domain.ErrNotFound
		}
		list, err = fn(list)
		if err != nil {
			return err
		}
		out = list
		return s.store.SavePackList(ctx, list)
	})
	return out, err
}

func category(list []domain.PackListCategory, index int) (*domain.PackListCategory, error) {
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("category %d: %w", index, domain.ErrNotFound)
	}
	return &list[index], nil
}

// Toggle flips the checked flag of one item.
func (s *PackListService) Toggle(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error) {
	list, err := s.mutate(ctx, func(list []domain.PackListCategory) ([]domain.PackListCategory, error) {
		cat, err := category(list, categoryIndex)
		if err != nil {
			return nil, err
		}
		for i := range cat.Items {
			if cat.Items[i].ID == itemID {
				cat.Items[i].Checked = !cat.Items[i].Checked
				return list, nil
			}
		}
		return nil, fmt.Errorf("item %q: %w", itemID, domain.ErrNotFound)
	})
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.Toggle: %w", err)
	}
	return list, nil
}

// AddItem appends a hand-made item to a category.
func (s *PackListService) AddItem(ctx context.Context, categoryIndex int, name string, quantity int) ([]domain.PackListCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("service.PackListService.AddItem: %w", invalid("Item naam is vereist"))
	}
	if quantity < 1 {
		quantity = 1
	}

	list, err := s.mutate(ctx, func(list []domain.PackListCategory) ([]domain.PackListCategory, error) {
		cat, err := category(list, categoryIndex)
		if err != nil {
			return nil, err
		}
		id := fmt.Sprintf("custom-%d", s.clock.now().UnixMilli())
		for n := 2; hasItem(list, id); n++ {
			id = fmt.Sprintf("custom-%d-%d", s.clock.now().UnixMilli(), n)
		}
		cat.Items = append(cat.Items, domain.PackListItem{
			ID:       id,
			Name:     name,
			Quantity: quantity,
			Note:     domain.CustomItemNote,
		})
		return list, nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.AddItem: %w", err)
	}
	return list, nil
}

func hasItem(list []domain.PackListCategory, id string) bool {
	for _, c := range list {
		for _, it := range c.Items {
			if it.ID == id {
				return true
			}
		}
	}
	return false
}

// RemoveItem deletes one item from a category.
func (s *PackListService) RemoveItem(ctx context.Context, categoryIndex int, itemID string) ([]domain.PackListCategory, error) {
	list, err := s.mutate(ctx, func(list []domain.PackListCategory) ([]domain.PackListCategory, error) {
		cat, err := category(list, categoryIndex)
		if err != nil {
			return nil, err
		}
		for i := range cat.Items {
			if cat.Items[i].ID == itemID {
				cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
				return list, nil
			}
		}
		return nil, fmt.Errorf("item %q: %w", itemID, domain.ErrNotFound)
	})
	if err != nil {
		return nil, fmt.Errorf("service.PackListService.RemoveItem: %w", err)
	}
	return list, nil
}

// Progress counts the stored list. A missing list counts as empty.
func (s *PackListService) Progress(ctx context.Context) (domain.PackProgress, error) {
	list, err := s.store.PackList(ctx)
	if err != nil {
		return domain.PackProgress{}, fmt.Errorf("service.PackListService.Progress: %w", err)
	}
	return domain.Progress(list), nil
}
