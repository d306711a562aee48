package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/packvision/internal/domain"
	"github.com/pkordes/packvision/internal/weather"
)

func TestIconFromOpenWeather(t *testing.T) {
	tests := map[string]domain.Icon{
		"01d": domain.IconSun,
		"02n": domain.IconPartlyCloudy,
		"03d": domain.IconCloudy,
		"04n": domain.IconCloudy,
		"09d": domain.IconRain,
		"10n": domain.IconRain,
		"11d": domain.IconStorm,
		"13d": domain.IconSnow,
		"50n": domain.IconFog,
		"":    domain.IconSun,
		"xx":  domain.IconSun,
	}
	for code, want := range tests {
		assert.Equal(t, want, weather.IconFromOpenWeather(code), "code %q", code)
	}
}

func TestIconFromWMOCode(t *testing.T) {
	tests := map[int]domain.Icon{
		0:  domain.IconSun,
		1:  domain.IconPartlyCloudy,
		2:  domain.IconPartlyCloudy,
		3:  domain.IconCloudy,
		45: domain.IconFog,
		48: domain.IconFog,
		51: domain.IconDrizzle,
		57: domain.IconDrizzle,
		61: domain.IconRain,
		67: domain.IconRain,
		71: domain.IconSnow,
		77: domain.IconSnow,
		80: domain.IconRain,
		82: domain.IconRain,
		85: domain.IconSnow,
		86: domain.IconSnow,
		95: domain.IconStorm,
		99: domain.IconStorm,
	}
	for code, want := range tests {
		assert.Equal(t, want, weather.IconFromWMOCode(code), "code %d", code)
	}
}

func TestIcons_StayInVocabulary(t *testing.T) {
	for code := 0; code <= 120; code++ {
		assert.True(t, weather.IconFromWMOCode(code).Valid(), "wmo %d", code)
	}
	for _, code := range []string{"01d", "02d", "03d", "04d", "09d", "10d", "11d", "13d", "50d", "99z", ""} {
		assert.True(t, weather.IconFromOpenWeather(code).Valid(), "owm %q", code)
	}
}

func TestDescriptionFromWMOCode(t *testing.T) {
	assert.Equal(t, "onbewolkt", weather.DescriptionFromWMOCode(0))
	assert.Equal(t, "regen", weather.DescriptionFromWMOCode(63))
	assert.Equal(t, "onweer met zware hagel", weather.DescriptionFromWMOCode(99))
	assert.Equal(t, "onbekend", weather.DescriptionFromWMOCode(42))
}
