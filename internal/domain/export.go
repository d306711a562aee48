package domain

// ExportRow is one pack-list item flattened for CSV export.
type ExportRow struct {
	Category  string `json:"category"`
	ItemID    string `json:"itemId"`
	Item      string `json:"item"`
	Quantity  int    `json:"quantity"`
	Essential bool   `json:"essential"`
	Checked   bool   `json:"checked"`
	Note      string `json:"note,omitempty"`
}
