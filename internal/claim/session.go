package claim

import (
	"fmt"
	"time"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// Session is the explicit state machine for one claim attempt:
// Recording → Closed → Accepted/Rejected, with Rejected also reachable
// straight from Recording via overspeed or a collision violation. It is
// advanced by discrete calls (OnFix, Validate, RecordCollision) from one
// sequential execution context; it performs no I/O and spawns no goroutines.
type Session struct {
	thresholds config.ClaimThresholds

	state     models.SessionState
	recorder  *PathRecorder
	closure   *ClosureDetector
	validator *Validator
	startedAt time.Time

	failure    models.FailureReason
	collision  *models.CollisionResult
	validation *models.ValidationResult

	lastCollisionSweep time.Time
}

// NewSession starts a claim session in the Recording state
func NewSession(thresholds config.ClaimThresholds, startedAt time.Time) *Session {
	return &Session{
		thresholds: thresholds,
		state:      models.SessionRecording,
		recorder:   NewPathRecorder(thresholds),
		closure:    NewClosureDetector(thresholds),
		validator:  NewValidator(thresholds),
		startedAt:  startedAt,
	}
}

// OnFix advances the session with one fix. Overspeed terminates the session;
// an appended point triggers the closure check and may transition the
// session to Closed.
func (s *Session) OnFix(fix models.TimedFix) (models.RecordOutcome, error) {
	if s.state != models.SessionRecording {
		return models.RecordSkippedTooClose, fmt.Errorf("session is %s, not recording", s.state)
	}

	outcome, _ := s.recorder.TryRecord(fix)
	if outcome == models.RecordSkippedRejectedBySpeedGate {
		s.fail(models.FailureOverspeed)
		return outcome, nil
	}

	if outcome == models.RecordAppended && s.closure.CheckClosure(s.recorder.Path()) {
		s.state = models.SessionClosed
	}

	return outcome, nil
}

// Validate runs the claim validator against the closed path and finishes
// the session. Only meaningful once the session is Closed.
func (s *Session) Validate() (models.ValidationResult, error) {
	if s.state != models.SessionClosed {
		return models.ValidationResult{}, fmt.Errorf("session is %s, not closed", s.state)
	}

	result := s.validator.Validate(s.recorder.Path(), s.recorder.CumulativeDistanceMeters())
	s.validation = &result
	if result.IsValid {
		s.state = models.SessionAccepted
	} else {
		s.state = models.SessionRejected
		s.failure = result.Reason
	}

	return result, nil
}

// RecordCollision stores the latest collision result; a hard violation
// terminates the session
func (s *Session) RecordCollision(result models.CollisionResult) {
	s.collision = &result
	if result.HasCollision && s.state == models.SessionRecording {
		switch result.Kind {
		case models.CollisionPointInTerritory:
			s.fail(models.FailurePointInTerritory)
		case models.CollisionPathCrossesBorder:
			s.fail(models.FailurePathCrossesTerritory)
		}
	}
}

// ShouldSweepCollisions reports whether enough time has passed since the
// last full collision sweep; sweeps are O(path × territory vertices) and
// run on a coarser cadence than fixes
func (s *Session) ShouldSweepCollisions(now time.Time) bool {
	return now.Sub(s.lastCollisionSweep) >= s.thresholds.CollisionCheckInterval
}

// MarkCollisionSweep records the time of a full collision sweep
func (s *Session) MarkCollisionSweep(now time.Time) {
	s.lastCollisionSweep = now
}

// State returns the session's lifecycle state
func (s *Session) State() models.SessionState {
	return s.state
}

// Path returns a copy of the recorded path
func (s *Session) Path() []models.GeoPoint {
	src := s.recorder.Path()
	out := make([]models.GeoPoint, len(src))
	copy(out, src)
	return out
}

// Status builds the API view of the session
func (s *Session) Status() models.SessionStatus {
	return models.SessionStatus{
		State:                    s.state,
		PointCount:               len(s.recorder.Path()),
		CumulativeDistanceMeters: s.recorder.CumulativeDistanceMeters(),
		CurrentSpeedKMH:          s.recorder.Gate().CurrentSpeedKMH(),
		SpeedWarning:             s.recorder.Gate().Warning(),
		IsClosed:                 s.closure.IsClosed(),
		StartedAt:                s.startedAt,
		FailureReason:            s.failure,
		Collision:                s.collision,
		Validation:               s.validation,
	}
}

// BuildUpload produces the territory store payload for an accepted claim:
// the ordered ring, its WKT polygon, bounding box, area, point count and
// the session start time
func (s *Session) BuildUpload(ownerID string) (models.TerritoryUpload, error) {
	if s.state != models.SessionAccepted {
		return models.TerritoryUpload{}, fmt.Errorf("session is %s, not accepted", s.state)
	}

	ring := s.Path()
	spath := toSpatialPath(ring)
	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(spath)

	return models.TerritoryUpload{
		OwnerID:          ownerID,
		Ring:             ring,
		WKT:              spatial.RingWKT(spath),
		AreaSquareMeters: s.validation.AreaSquareMeters,
		PointCount:       len(ring),
		MinLat:           minLat,
		MinLon:           minLon,
		MaxLat:           maxLat,
		MaxLon:           maxLon,
		StartedAt:        s.startedAt,
	}, nil
}

func (s *Session) fail(reason models.FailureReason) {
	s.state = models.SessionRejected
	s.failure = reason
}
