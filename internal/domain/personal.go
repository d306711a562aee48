package domain

// PersonalItemCategory buckets the user's own must-have items.
type PersonalItemCategory string

const (
	CategoryTech     PersonalItemCategory = "tech"
	CategoryMedicine PersonalItemCategory = "medicine"
	CategorySport    PersonalItemCategory = "sport"
	CategoryWork     PersonalItemCategory = "work"
	CategoryOther    PersonalItemCategory = "other"
)

// PersonalItemCategoryOrder is the display order of the categories.
var PersonalItemCategoryOrder = []PersonalItemCategory{
	CategoryTech, CategoryMedicine, CategorySport, CategoryWork, CategoryOther,
}

// CategoryMeta is the display label and icon of a personal item category.
type CategoryMeta struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// PersonalItemCategories holds the display metadata per category.
var PersonalItemCategories = map[PersonalItemCategory]CategoryMeta{
	CategoryTech:     {Label: "Tech & Elektronica", Icon: "💻"},
	CategoryMedicine: {Label: "Medicijnen", Icon: "💊"},
	CategorySport:    {Label: "Sport & Outdoor", Icon: "⚽"},
	CategoryWork:     {Label: "Werk", Icon: "💼"},
	CategoryOther:    {Label: "Overig", Icon: "📦"},
}

// Valid reports whether c is a known category.
func (c PersonalItemCategory) Valid() bool {
	_, ok := PersonalItemCategories[c]
	return ok
}

// PersonalItem is a user-owned item, independent of any trip. Items with
// AlwaysBring set are injected into every pack-list prompt.
type PersonalItem struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Category    PersonalItemCategory `json:"category"`
	AlwaysBring bool                 `json:"alwaysBring"`
}

// ItemSuggestions is the fixed catalogue offered on the personal items screen.
var ItemSuggestions = map[PersonalItemCategory][]string{
	CategoryTech: {
		"Wereldstekker/reisadapter",
		"Powerbank",
		"Koptelefoon",
		"Laptop",
		"Laptop oplader",
		"Telefoon oplader",
		"USB-C kabel",
		"Lightning kabel",
		"E-reader",
		"Camera",
		"SD-kaart",
		"Draadloze oordopjes",
	},
	CategoryMedicine: {
		"Paracetamol",
		"Ibuprofen",
		"Anti-diarree tabletten",
		"Pleisters",
		"Zonnebrandcrème",
		"DEET muggenspray",
		"Reisziekte tabletten",
		"Persoonlijke medicatie",
		"Vitamines",
	},
	CategorySport: {
		"Sportschoenen",
		"Zwembroek/badpak",
		"Handdoek (microvezel)",
		"Yoga mat",
		"Weerstand banden",
		"Duikbril & snorkel",
		"Wandelschoenen",
	},
	CategoryWork: {
		"Laptop",
		"Notitieboek",
		"Pennen",
		"Visitekaartjes",
		"Presentatie clicker",
		"HDMI-adapter",
	},
	CategoryOther: {
		"Nekkussen",
		"Slaapmasker",
		"Oordopjes (slapen)",
		"Waslijntje",
		"Ritssluiting zakjes",
		"Dagboek",
	},
}
