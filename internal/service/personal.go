package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/store"
)

// Suggestion is a catalogue entry, flagged when the user already has it.
type Suggestion struct {
	Name  string `json:"name"`
	Added bool   `json:"added"`
}

// SuggestionGroup holds the suggestions of one category.
type SuggestionGroup struct {
	Category    domain.PersonalItemCategory `json:"category"`
	Label       string                      `json:"label"`
	Icon        string                      `json:"icon"`
	Suggestions []Suggestion                `json:"suggestions"`
}

// PersonalItemService manages the user's own must-have items.
type PersonalItemService struct {
	store *store.Store
}

// NewPersonalItemService constructs a PersonalItemService.
func NewPersonalItemService(s *store.Store) *PersonalItemService {
	return &PersonalItemService{store: s}
}

// List returns all personal items in insertion order.
func (s *PersonalItemService) List(ctx context.Context) ([]domain.PersonalItem, error) {
	items, err := s.store.PersonalItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PersonalItemService.List: %w", err)
	}
	return items, nil
}

func validatePersonalItem(item *domain.PersonalItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return invalid("Naam is vereist")
	}
	if item.Category == "" {
		item.Category = domain.CategoryOther
	}
	if !item.Category.Valid() {
		return invalid("Onbekende categorie")
	}
	return nil
}

// duplicate reports whether another item (not skipID) has the same name,
// ignoring case.
func duplicate(items []domain.PersonalItem, name, skipID string) bool {
	for _, it := range items {
		if it.ID != skipID && strings.EqualFold(it.Name, name) {
			return true
		}
	}
	return false
}

// Add stores a new item. A name already on the list, in any case, is a
// domain.ErrConflict.
func (s *PersonalItemService) Add(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error) {
	if err := validatePersonalItem(&item); err != nil {
		return domain.PersonalItem{}, fmt.Errorf("service.PersonalItemService.Add: %w", err)
	}
	item.ID = uuid.NewString()

	err := s.store.WithLock(func() error {
		items, err := s.store.PersonalItems(ctx)
		if err != nil {
			return err
		}
		if duplicate(items, item.Name, "") {
			return fmt.Errorf("%w: %q staat al in je lijst", domain.ErrConflict, item.Name)
		}
		return s.store.SavePersonalItems(ctx, append(items, item))
	})
	if err != nil {
		return domain.PersonalItem{}, fmt.Errorf("service.PersonalItemService.Add: %w", err)
	}
	return item, nil
}

// Update replaces the item with the same id.
func (s *PersonalItemService) Update(ctx context.Context, item domain.PersonalItem) (domain.PersonalItem, error) {
	if err := validatePersonalItem(&item); err != nil {
		return domain.PersonalItem{}, fmt.Errorf("service.PersonalItemService.Update: %w", err)
	}

	err := s.store.WithLock(func() error {
		items, err := s.store.PersonalItems(ctx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range items {
			if items[i].ID == item.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		if duplicate(items, item.Name, item.ID) {
			return fmt.Errorf("%w: %q staat al in je lijst", domain.ErrConflict, item.Name)
		}
		items[idx] = item
		return s.store.SavePersonalItems(ctx, items)
	})
	if err != nil {
		return domain.PersonalItem{}, fmt.Errorf("service.PersonalItemService.Update: %w", err)
	}
	return item, nil
}

// Remove deletes the item with id.
func (s *PersonalItemService) Remove(ctx context.Context, id string) error {
	err := s.store.WithLock(func() error {
		items, err := s.store.PersonalItems(ctx)
		if err != nil {
			return err
		}
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			return domain.ErrNotFound
		}
		return s.store.SavePersonalItems(ctx, kept)
	})
	if err != nil {
		return fmt.Errorf("service.PersonalItemService.Remove: %w", err)
	}
	return nil
}

// Suggestions returns the catalogue for one category, or for all
// categories in a fixed order when category is empty.
func (s *PersonalItemService) Suggestions(ctx context.Context, category domain.PersonalItemCategory) ([]SuggestionGroup, error) {
	var cats []domain.PersonalItemCategory
	switch {
	case category == "":
		cats = domain.PersonalItemCategoryOrder
	case category.Valid():
		cats = []domain.PersonalItemCategory{category}
	default:
		return nil, fmt.Errorf("service.PersonalItemService.Suggestions: %w", invalid("Onbekende categorie"))
	}

	items, err := s.store.PersonalItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PersonalItemService.Suggestions: %w", err)
	}

	groups := make([]SuggestionGroup, 0, len(cats))
	for _, c := range cats {
		meta := domain.PersonalItemCategories[c]
		g := SuggestionGroup{Category: c, Label: meta.Label, Icon: meta.Icon, Suggestions: []Suggestion{}}
		for _, name := range domain.ItemSuggestions[c] {
			g.Suggestions = append(g.Suggestions, Suggestion{Name: name, Added: duplicate(items, name, "")})
		}
		groups = append(groups, g)
	}
	return groups, nil
}
