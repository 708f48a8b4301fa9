package entity

// TemperatureCharacterization is the coarse label derived from a Fahrenheit temperature
type TemperatureCharacterization string

const (
	TemperatureHot      TemperatureCharacterization = "hot"
	TemperatureCold     TemperatureCharacterization = "cold"
	TemperatureModerate TemperatureCharacterization = "moderate"
)

const (
	// HotThresholdF is the lowest temperature labeled hot
	HotThresholdF = 85
	// ColdThresholdF is the highest temperature labeled cold
	ColdThresholdF = 50
)

// CharacterizeTemperature maps a Fahrenheit temperature to hot, cold or moderate.
func CharacterizeTemperature(tempF int) TemperatureCharacterization {
	switch {
	case tempF >= HotThresholdF:
		return TemperatureHot
	case tempF <= ColdThresholdF:
		return TemperatureCold
	default:
		return TemperatureModerate
	}
}
