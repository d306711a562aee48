package domain

// Icon is the provider-neutral weather icon vocabulary shared by every
// weather provider.
type Icon string

const (
	IconSun          Icon = "sun"
	IconPartlyCloudy Icon = "partly-cloudy"
	IconCloudy       Icon = "cloudy"
	IconFog          Icon = "fog"
	IconDrizzle      Icon = "drizzle"
	IconRain         Icon = "rain"
	IconSnow         Icon = "snow"
	IconStorm        Icon = "storm"
)

// Icons lists the closed icon vocabulary.
var Icons = []Icon{
	IconSun, IconPartlyCloudy, IconCloudy, IconFog,
	IconDrizzle, IconRain, IconSnow, IconStorm,
}

// Valid reports whether i belongs to the vocabulary.
func (i Icon) Valid() bool {
	for _, v := range Icons {
		if v == i {
			return true
		}
	}
	return false
}

// CurrentWeather holds the conditions at lookup time.
// WindSpeed is in km/h.
type CurrentWeather struct {
	Temp        int    `json:"temp"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
}

// WeatherDay is one forecast day. Rain is the precipitation total in mm,
// rounded to one decimal.
type WeatherDay struct {
	Date        string  `json:"date"`
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Description string  `json:"description"`
	Icon        Icon    `json:"icon"`
	Rain        float64 `json:"rain"`
}

// WeatherData is the normalized weather for a destination, whichever
// provider answered.
type WeatherData struct {
	Current  CurrentWeather `json:"current"`
	Forecast []WeatherDay   `json:"forecast"`
	Location string         `json:"location"`
}
