package claim

import (
	"fmt"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// Validator decides whether a closed claim path is a legitimate territory.
// Checks run in a fixed order and short-circuit on the first failure; the
// order matters for user-facing messaging, not correctness. Pure given a
// snapshot of the path and distance.
type Validator struct {
	thresholds config.ClaimThresholds
}

// NewValidator creates a claim validator
func NewValidator(thresholds config.ClaimThresholds) *Validator {
	return &Validator{thresholds: thresholds}
}

// Validate runs the ordered checks: point count, walked distance,
// self-intersection, enclosed area. On success the computed area is
// returned for upload.
func (v *Validator) Validate(path []models.GeoPoint, cumulativeDistanceMeters float64) models.ValidationResult {
	if len(path) < v.thresholds.MinPathPoints {
		return models.ValidationResult{
			Reason: models.FailureInsufficientPoints,
			Message: fmt.Sprintf("recorded %d points, need at least %d",
				len(path), v.thresholds.MinPathPoints),
		}
	}

	if cumulativeDistanceMeters < v.thresholds.MinDistanceMeters {
		return models.ValidationResult{
			Reason: models.FailureInsufficientDistance,
			Message: fmt.Sprintf("walked %.0f m, need at least %.0f m",
				cumulativeDistanceMeters, v.thresholds.MinDistanceMeters),
		}
	}

	if HasSelfIntersection(path, v.thresholds.IntersectSkipWindow) {
		return models.ValidationResult{
			Reason:  models.FailureSelfIntersecting,
			Message: "path crosses itself; a claim must be a simple loop",
		}
	}

	area := spatial.RingArea(toSpatialPath(path))
	if area < v.thresholds.MinAreaSquareMeters {
		return models.ValidationResult{
			Reason: models.FailureAreaTooSmall,
			Message: fmt.Sprintf("enclosed %.0f m², need at least %.0f m²",
				area, v.thresholds.MinAreaSquareMeters),
			AreaSquareMeters: area,
		}
	}

	return models.ValidationResult{
		IsValid:          true,
		AreaSquareMeters: area,
	}
}
