package models

import "time"

// Territory represents a claimed territory polygon owned by a player.
// The ring is stored in the device (WGS-84) frame; conversion to the map
// display frame happens only at the API boundary.
type Territory struct {
	ID               int64      `json:"id" db:"id"`
	OwnerID          string     `json:"ownerId" db:"owner_id"`
	Ring             []GeoPoint `json:"ring"`
	WKT              string     `json:"wkt,omitempty" db:"wkt"`
	AreaSquareMeters float64    `json:"areaSquareMeters" db:"area_m2"`
	PointCount       int        `json:"pointCount" db:"point_count"`
	MinLat           float64    `json:"minLat" db:"min_lat"`
	MinLon           float64    `json:"minLon" db:"min_lon"`
	MaxLat           float64    `json:"maxLat" db:"max_lat"`
	MaxLon           float64    `json:"maxLon" db:"max_lon"`
	SessionStartedAt time.Time  `json:"sessionStartedAt" db:"session_started_at"`
	ClaimedAt        time.Time  `json:"claimedAt" db:"claimed_at"`
}

// TerritoryUpload is the payload produced for the store after a successful
// validation: the ordered ring, its WKT polygon (longitude-first, explicitly
// closed), bounding box, area, point count, and the session start time
type TerritoryUpload struct {
	OwnerID          string     `json:"ownerId"`
	Ring             []GeoPoint `json:"ring"`
	WKT              string     `json:"wkt"`
	AreaSquareMeters float64    `json:"areaSquareMeters"`
	PointCount       int        `json:"pointCount"`
	MinLat           float64    `json:"minLat"`
	MinLon           float64    `json:"minLon"`
	MaxLat           float64    `json:"maxLat"`
	MaxLon           float64    `json:"maxLon"`
	StartedAt        time.Time  `json:"startedAt"`
}

// TerritoryFilter represents query parameters for listing territories
type TerritoryFilter struct {
	OwnerID      string `form:"ownerId"`
	ExcludeOwner string `form:"excludeOwner"`
	Frame        string `form:"frame"` // "device" (default) or "display"
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}
