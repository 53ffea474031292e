package spatial

import (
	"fmt"
	"strings"
)

// RingWKT serializes a ring as a well-known-text POLYGON. Coordinates are
// longitude-first per the WKT convention, and the ring is explicitly closed
// by repeating the first vertex. Returns an empty string for fewer than
// 3 points.
func RingWKT(points []Point) string {
	if len(points) < 3 {
		return ""
	}

	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, p := range points {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.6f %.6f", p.Lon, p.Lat)
	}
	// Close the ring
	fmt.Fprintf(&b, ", %.6f %.6f", points[0].Lon, points[0].Lat)
	b.WriteString("))")
	return b.String()
}
