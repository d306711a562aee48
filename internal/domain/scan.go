package domain

// DefaultScanSummary fills an empty summary in a scan result.
const DefaultScanSummary = "Analyse voltooid."

// ScanResult is the outcome of one luggage scan. It is not merged with
// earlier scans.
type ScanResult struct {
	RecognizedItems []string `json:"recognizedItems"`
	MissingItems    []string `json:"missingItems"`
	Warnings        []string `json:"warnings"`
	Tips            []string `json:"tips"`
	Summary         string   `json:"summary"`
}

// VaccinationItem is a single vaccination with a short explanation.
type VaccinationItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// VaccinationInfo is the vaccination advice for a country.
type VaccinationInfo struct {
	Required    []VaccinationItem `json:"required"`
	Recommended []VaccinationItem `json:"recommended"`
	Note        string            `json:"note"`
}
