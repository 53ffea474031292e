package claim

import (
	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// PathRecorder accumulates a de-noised, minimum-spaced sequence of points
// representing the walked boundary, using a SpeedGate as its filter
type PathRecorder struct {
	thresholds config.ClaimThresholds
	gate       *SpeedGate

	path               []models.GeoPoint
	cumulativeDistance float64
}

// NewPathRecorder creates a path recorder with a fresh speed gate
func NewPathRecorder(thresholds config.ClaimThresholds) *PathRecorder {
	return &PathRecorder{
		thresholds: thresholds,
		gate:       NewSpeedGate(thresholds),
	}
}

// TryRecord feeds one fix through the speed gate and, if accepted, appends
// its point when it is at least the minimum spacing from the last recorded
// point. The first point of a session is always appended; it defines the
// origin. Skipped fixes still contribute their speed information.
func (r *PathRecorder) TryRecord(fix models.TimedFix) (models.RecordOutcome, models.SpeedDecision) {
	decision := r.gate.Evaluate(fix)
	if decision == models.SpeedRejectAndHalt {
		return models.RecordSkippedRejectedBySpeedGate, decision
	}

	if len(r.path) == 0 {
		r.path = append(r.path, fix.Point)
		return models.RecordAppended, decision
	}

	last := r.path[len(r.path)-1]
	distance := spatial.Distance(toSpatial(last), toSpatial(fix.Point))
	if distance < r.thresholds.MinSpacingMeters {
		return models.RecordSkippedTooClose, decision
	}

	r.path = append(r.path, fix.Point)
	r.cumulativeDistance += distance
	return models.RecordAppended, decision
}

// Path returns the recorded path. The slice is owned by the recorder;
// callers that hold it across further recording must copy.
func (r *PathRecorder) Path() []models.GeoPoint {
	return r.path
}

// CumulativeDistanceMeters returns the total recorded walking distance
func (r *PathRecorder) CumulativeDistanceMeters() float64 {
	return r.cumulativeDistance
}

// Gate exposes the recorder's speed gate for status reporting
func (r *PathRecorder) Gate() *SpeedGate {
	return r.gate
}
