package models

import "time"

// GeoPoint represents a geographic coordinate in degrees (WGS-84 unless
// explicitly converted at the display boundary)
type GeoPoint struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// TimedFix represents a single raw GPS sample from the location provider
type TimedFix struct {
	Point              GeoPoint  `json:"point"`
	Timestamp          time.Time `json:"timestamp"`
	HorizontalAccuracy float64   `json:"horizontalAccuracy"` // meters, provider-reported
}

// FixRequest is the wire form of a TimedFix submitted to the claim API
type FixRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Timestamp int64   `json:"timestamp" binding:"required"` // Unix milliseconds
	Accuracy  float64 `json:"accuracy"`
}

// ToTimedFix converts the wire form into the engine's fix type
func (r FixRequest) ToTimedFix() TimedFix {
	return TimedFix{
		Point:              GeoPoint{Latitude: r.Latitude, Longitude: r.Longitude},
		Timestamp:          time.UnixMilli(r.Timestamp),
		HorizontalAccuracy: r.Accuracy,
	}
}
