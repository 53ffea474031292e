package spatial

import "math"

// RingArea calculates the enclosed area of a path treated as an implicitly
// closed ring (the last point wraps back to the first), in square meters.
// Uses a curvature-corrected shoelace summation: for each consecutive vertex
// pair accumulate (lon2-lon1)*(2+sin(lat1)+sin(lat2)) in radians, then scale
// by R²/2. Good for loops up to a few kilometres across; not exact for very
// large polygons.
func RingArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < len(points); i++ {
		j := (i + 1) % len(points)
		lon1 := points[i].Lon * math.Pi / 180
		lon2 := points[j].Lon * math.Pi / 180
		lat1 := points[i].Lat * math.Pi / 180
		lat2 := points[j].Lat * math.Pi / 180
		sum += (lon2 - lon1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}

	return math.Abs(sum * EarthRadiusMeters * EarthRadiusMeters / 2)
}
