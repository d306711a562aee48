package domain

import "math"

// Defaults applied to generated pack lists when the model leaves a field out.
const (
	DefaultCategoryName = "Overig"
	DefaultCategoryIcon = "📦"
	DefaultItemName     = "Item"
	CustomItemNote      = "Handmatig toegevoegd"
)

// PackListItem is a single thing to bring. ID is unique within the list.
// Checked is the only field the user mutates after generation.
type PackListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Checked   bool   `json:"checked"`
	Essential bool   `json:"essential"`
	Note      string `json:"note,omitempty"`
}

// PackListCategory groups items under a name and an emoji icon.
type PackListCategory struct {
	Name  string         `json:"name"`
	Icon  string         `json:"icon"`
	Items []PackListItem `json:"items"`
}

// PackProgress summarizes how far packing has come.
type PackProgress struct {
	Checked          int `json:"checked"`
	Total            int `json:"total"`
	Percent          int `json:"percent"`
	EssentialMissing int `json:"essentialMissing"`
}

// Progress counts checked, total and unchecked essential items.
func Progress(list []PackListCategory) PackProgress {
	var p PackProgress
	for _, c := range list {
		for _, it := range c.Items {
			p.Total++
			if it.Checked {
				p.Checked++
			} else if it.Essential {
				p.EssentialMissing++
			}
		}
	}
	p.Percent = Percent(p.Checked, p.Total)
	return p
}

// Percent returns part/total as a whole percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}

// ClonePackList returns a deep copy so callers can mutate items freely.
func ClonePackList(list []PackListCategory) []PackListCategory {
	if list == nil {
		return nil
	}
	out := make([]PackListCategory, len(list))
	for i, c := range list {
		out[i] = c
		out[i].Items = append([]PackListItem(nil), c.Items...)
	}
	return out
}
