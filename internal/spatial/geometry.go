package spatial

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Orientation values for ordered point triplets
const (
	Collinear        = 0
	Clockwise        = 1
	CounterClockwise = 2
)

// Orientation returns the orientation of the ordered triplet (p, q, r) using
// the sign of the 2D cross product with longitude as x and latitude as y.
// A planar approximation, valid at the metre-to-kilometre scale of a walked loop.
func Orientation(p, q, r Point) int {
	val := (q.Lat-p.Lat)*(r.Lon-q.Lon) - (q.Lon-p.Lon)*(r.Lat-q.Lat)
	if val == 0 {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// SegmentsIntersect reports whether segments (p1,p2) and (p3,p4) cross,
// using the standard four-orientation test
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	o1 := Orientation(p1, p2, p3)
	o2 := Orientation(p1, p2, p4)
	o3 := Orientation(p3, p4, p1)
	o4 := Orientation(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear overlap cases
	if o1 == Collinear && onSegment(p1, p3, p2) {
		return true
	}
	if o2 == Collinear && onSegment(p1, p4, p2) {
		return true
	}
	if o3 == Collinear && onSegment(p3, p1, p4) {
		return true
	}
	if o4 == Collinear && onSegment(p3, p2, p4) {
		return true
	}

	return false
}

// onSegment reports whether q lies on segment (p, r), assuming the three
// points are collinear
func onSegment(p, q, r Point) bool {
	return q.Lon <= max(p.Lon, r.Lon) && q.Lon >= min(p.Lon, r.Lon) &&
		q.Lat <= max(p.Lat, r.Lat) && q.Lat >= min(p.Lat, r.Lat)
}

// PointInPolygon checks if a point is inside a polygon using ray casting:
// count the crossings of a horizontal ray from the test point; odd means inside
func PointInPolygon(point Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		if ((polygon[i].Lat > point.Lat) != (polygon[j].Lat > point.Lat)) &&
			(point.Lon < (polygon[j].Lon-polygon[i].Lon)*(point.Lat-polygon[i].Lat)/(polygon[j].Lat-polygon[i].Lat)+polygon[i].Lon) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}

	return totalDist
}
