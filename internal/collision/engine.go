package collision

import (
	"fmt"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// Engine checks a candidate point or path against a snapshot of other
// players' territories: containment, edge crossing, and tiered proximity
// warnings. The snapshot is treated as an immutable read-only view for the
// duration of one check call; territories belonging to the checking owner
// are skipped.
type Engine struct {
	thresholds config.ClaimThresholds
}

// NewEngine creates a collision engine
func NewEngine(thresholds config.ClaimThresholds) *Engine {
	return &Engine{thresholds: thresholds}
}

// CheckStart verifies a claim may start at the given point: starting inside
// another owner's territory is a hard violation
func (e *Engine) CheckStart(point models.GeoPoint, ownerID string, others []models.Territory) models.CollisionResult {
	sp := spatial.Point{Lat: point.Latitude, Lon: point.Longitude}

	for i := range others {
		t := &others[i]
		if t.OwnerID == ownerID {
			continue
		}
		if spatial.PointInPolygon(sp, ringToSpatial(t.Ring)) {
			return violation(models.CollisionPointInTerritory,
				"cannot start a claim inside another player's territory")
		}
	}

	return e.proximityResult(point, ownerID, others)
}

// CheckPath verifies the recorded path against every other territory: any
// path point inside a polygon, or any path edge crossing a polygon edge,
// is a hard violation
func (e *Engine) CheckPath(path []models.GeoPoint, ownerID string, others []models.Territory) models.CollisionResult {
	if len(path) == 0 {
		return models.CollisionResult{NearestDistanceMeters: -1, WarningLevel: models.WarningSafe}
	}

	spath := ringToSpatial(path)

	for i := range others {
		t := &others[i]
		if t.OwnerID == ownerID || len(t.Ring) < 3 {
			continue
		}
		ring := ringToSpatial(t.Ring)

		for _, p := range spath {
			if spatial.PointInPolygon(p, ring) {
				return violation(models.CollisionPointInTerritory,
					"your path entered another player's territory")
			}
		}

		for a := 0; a+1 < len(spath); a++ {
			for j := 0; j < len(ring); j++ {
				k := (j + 1) % len(ring)
				if spatial.SegmentsIntersect(spath[a], spath[a+1], ring[j], ring[k]) {
					return violation(models.CollisionPathCrossesBorder,
						"your path crossed another player's border")
				}
			}
		}
	}

	return e.proximityResult(path[len(path)-1], ownerID, others)
}

// NearestDistance returns the minimum great-circle distance in meters from
// the point to any vertex of any other territory. A vertex-distance
// approximation, not true point-to-polygon distance. Returns -1 when there
// are no other territories.
func (e *Engine) NearestDistance(point models.GeoPoint, ownerID string, others []models.Territory) float64 {
	sp := spatial.Point{Lat: point.Latitude, Lon: point.Longitude}
	nearest := -1.0
	for i := range others {
		t := &others[i]
		if t.OwnerID == ownerID {
			continue
		}
		for _, v := range t.Ring {
			d := spatial.Distance(sp, spatial.Point{Lat: v.Latitude, Lon: v.Longitude})
			if nearest < 0 || d < nearest {
				nearest = d
			}
		}
	}
	return nearest
}

// ClassifyProximity maps a nearest distance to an ordered warning tier.
// A negative distance means no territory nearby and classifies as Safe.
func (e *Engine) ClassifyProximity(distance float64) models.WarningLevel {
	switch {
	case distance < 0:
		return models.WarningSafe
	case distance < e.thresholds.ProximityDangerMeters:
		return models.WarningDanger
	case distance < e.thresholds.ProximityWarningMeters:
		return models.WarningWarning
	case distance < e.thresholds.ProximityCautionMeters:
		return models.WarningCaution
	default:
		return models.WarningSafe
	}
}

func (e *Engine) proximityResult(point models.GeoPoint, ownerID string, others []models.Territory) models.CollisionResult {
	distance := e.NearestDistance(point, ownerID, others)
	level := e.ClassifyProximity(distance)
	return models.CollisionResult{
		NearestDistanceMeters: distance,
		WarningLevel:          level,
		Message:               proximityMessage(level, distance),
	}
}

func violation(kind models.CollisionKind, message string) models.CollisionResult {
	return models.CollisionResult{
		HasCollision:          true,
		Kind:                  kind,
		Message:               message,
		NearestDistanceMeters: 0,
		WarningLevel:          models.WarningViolation,
	}
}

func proximityMessage(level models.WarningLevel, distance float64) string {
	switch level {
	case models.WarningCaution:
		return fmt.Sprintf("another territory is %.0f m away", distance)
	case models.WarningWarning:
		return fmt.Sprintf("approaching another territory, %.0f m away", distance)
	case models.WarningDanger:
		return fmt.Sprintf("very close to another territory, %.0f m away", distance)
	default:
		return ""
	}
}

func ringToSpatial(ring []models.GeoPoint) []spatial.Point {
	out := make([]spatial.Point, len(ring))
	for i, p := range ring {
		out[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return out
}
