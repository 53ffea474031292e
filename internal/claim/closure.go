package claim

import (
	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// ClosureDetector decides when the walked path has returned near its own
// start. The transition is one-way: once closed, a growing path can never
// reopen the loop.
type ClosureDetector struct {
	thresholds config.ClaimThresholds
	closed     bool
}

// NewClosureDetector creates a closure detector
func NewClosureDetector(thresholds config.ClaimThresholds) *ClosureDetector {
	return &ClosureDetector{thresholds: thresholds}
}

// CheckClosure reports whether the path forms a loop: at least the minimum
// point count, with the last point within the closure radius of the first.
// A geofence-style radius is more forgiving than exact coincidence, matching
// real GPS noise.
func (d *ClosureDetector) CheckClosure(path []models.GeoPoint) bool {
	if d.closed {
		return true
	}

	if len(path) < d.thresholds.MinClosurePoints {
		return false
	}

	first := path[0]
	last := path[len(path)-1]
	distance := spatial.Distance(toSpatial(last), toSpatial(first))
	if distance <= d.thresholds.ClosureRadiusMeters {
		d.closed = true
	}

	return d.closed
}

// IsClosed reports the current closure state
func (d *ClosureDetector) IsClosed() bool {
	return d.closed
}
