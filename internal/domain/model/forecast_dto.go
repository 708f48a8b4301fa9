package model

import (
	"time"

	"forecast-api/internal/domain/entity"
)

// ForecastResponse is the simplified forecast returned by the API
type ForecastResponse struct {
	Latitude                    float64                            `json:"latitude" example:"39.7456"`
	Longitude                   float64                            `json:"longitude" example:"-97.0892"`
	ShortForecast               string                             `json:"shortForecast" example:"Mostly Sunny"`
	TemperatureF                int                                `json:"temperatureF" example:"72"`
	TemperatureCharacterization entity.TemperatureCharacterization `json:"temperatureCharacterization" example:"moderate" enums:"hot,cold,moderate"`
}

// ForecastServedEvent is published after a forecast is returned to a client
type ForecastServedEvent struct {
	EventID                     string                             `json:"eventId"`
	Latitude                    float64                            `json:"latitude"`
	Longitude                   float64                            `json:"longitude"`
	ShortForecast               string                             `json:"shortForecast"`
	TemperatureF                int                                `json:"temperatureF"`
	TemperatureCharacterization entity.TemperatureCharacterization `json:"temperatureCharacterization"`
	ServedAt                    time.Time                          `json:"servedAt"`
}
