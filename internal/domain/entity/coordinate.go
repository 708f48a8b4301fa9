package entity

import (
	"errors"
	"math"
)

var (
	ErrLatitudeOutOfRange  = errors.New("Latitude must be between -90 and 90.")
	ErrLongitudeOutOfRange = errors.New("Longitude must be between -180 and 180.")
)

// Coordinate is a WGS84 point in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks latitude first, then longitude. NaN and infinities are out of range.
func (c Coordinate) Validate() error {
	if !inRange(c.Latitude, 90) {
		return ErrLatitudeOutOfRange
	}
	if !inRange(c.Longitude, 180) {
		return ErrLongitudeOutOfRange
	}
	return nil
}

func inRange(value, limit float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= -limit && value <= limit
}
