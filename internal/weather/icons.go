package weather

import (
	"strings"

	"github.com/pkordes/packvision/internal/domain"
)

// IconFromOpenWeather maps an OpenWeatherMap icon code ("01d", "10n", ...)
// to the shared vocabulary. Unknown codes fall back to sun.
func IconFromOpenWeather(icon string) domain.Icon {
	switch {
	case strings.Contains(icon, "01"):
		return domain.IconSun
	case strings.Contains(icon, "02"):
		return domain.IconPartlyCloudy
	case strings.Contains(icon, "03"), strings.Contains(icon, "04"):
		return domain.IconCloudy
	case strings.Contains(icon, "09"), strings.Contains(icon, "10"):
		return domain.IconRain
	case strings.Contains(icon, "11"):
		return domain.IconStorm
	case strings.Contains(icon, "13"):
		return domain.IconSnow
	case strings.Contains(icon, "50"):
		return domain.IconFog
	}
	return domain.IconSun
}

// IconFromWMOCode maps a WMO weather interpretation code, as reported by
// Open-Meteo, to the shared vocabulary.
func IconFromWMOCode(code int) domain.Icon {
	switch {
	case code == 0:
		return domain.IconSun
	case code <= 2:
		return domain.IconPartlyCloudy
	case code == 3:
		return domain.IconCloudy
	case code <= 48:
		return domain.IconFog
	case code <= 57:
		return domain.IconDrizzle
	case code <= 67:
		return domain.IconRain
	case code <= 77:
		return domain.IconSnow
	case code <= 82:
		return domain.IconRain
	case code <= 86:
		return domain.IconSnow
	}
	return domain.IconStorm
}

var wmoDescriptions = map[int]string{
	0:  "onbewolkt",
	1:  "overwegend helder",
	2:  "gedeeltelijk bewolkt",
	3:  "bewolkt",
	45: "mist",
	48: "rijpmist",
	51: "lichte motregen",
	53: "motregen",
	55: "zware motregen",
	56: "lichte ijzel",
	57: "ijzel",
	61: "lichte regen",
	63: "regen",
	65: "zware regen",
	66: "lichte ijsregen",
	67: "ijsregen",
	71: "lichte sneeuw",
	73: "sneeuw",
	75: "zware sneeuw",
	77: "sneeuwkorrels",
	80: "lichte regenbuien",
	81: "regenbuien",
	82: "zware regenbuien",
	85: "lichte sneeuwbuien",
	86: "zware sneeuwbuien",
	95: "onweer",
	96: "onweer met hagel",
	99: "onweer met zware hagel",
}

// DescriptionFromWMOCode returns the Dutch description of a WMO code.
func DescriptionFromWMOCode(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return "onbekend"
}
