package claim

import (
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// HasSelfIntersection tests the open path for crossing edges (figure-eight
// patterns). Adjacent edges share a vertex and are never compared. Because
// closure intentionally brings the end of the path near its start, edge
// pairs where one edge is within skipWindow of the head and the other within
// skipWindow of the tail are excluded; without that a legitimately closed
// loop is misreported as self-intersecting. Paths with fewer than 4 points
// cannot cross and report false.
func HasSelfIntersection(path []models.GeoPoint, skipWindow int) bool {
	if len(path) < 4 {
		return false
	}

	edges := len(path) - 1
	for i := 0; i < edges-1; i++ {
		for j := i + 2; j < edges; j++ {
			if i < skipWindow && j >= edges-skipWindow {
				continue
			}
			if spatial.SegmentsIntersect(
				toSpatial(path[i]), toSpatial(path[i+1]),
				toSpatial(path[j]), toSpatial(path[j+1]),
			) {
				return true
			}
		}
	}

	return false
}

func toSpatial(p models.GeoPoint) spatial.Point {
	return spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// toSpatialPath converts an engine path to the spatial package's point type
func toSpatialPath(path []models.GeoPoint) []spatial.Point {
	out := make([]spatial.Point, len(path))
	for i, p := range path {
		out[i] = toSpatial(p)
	}
	return out
}
