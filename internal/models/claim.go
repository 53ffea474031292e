package models

import "time"

// SpeedDecision is the outcome of evaluating a fix against the speed gate
type SpeedDecision int

const (
	// SpeedAccept means the fix is within normal walking speed
	SpeedAccept SpeedDecision = iota
	// SpeedAcceptWithWarning means the fix exceeds the warning threshold
	// but recording continues
	SpeedAcceptWithWarning
	// SpeedRejectAndHalt means sustained overspeed; the session must stop
	SpeedRejectAndHalt
)

func (d SpeedDecision) String() string {
	switch d {
	case SpeedAccept:
		return "accept"
	case SpeedAcceptWithWarning:
		return "accept_with_warning"
	case SpeedRejectAndHalt:
		return "reject_and_halt"
	default:
		return "unknown"
	}
}

// RecordOutcome is the outcome of feeding a fix to the path recorder
type RecordOutcome int

const (
	// RecordAppended means the point was added to the path
	RecordAppended RecordOutcome = iota
	// RecordSkippedTooClose means the point was within the minimum spacing
	// of the last recorded point and was dropped (anti-jitter)
	RecordSkippedTooClose
	// RecordSkippedRejectedBySpeedGate means the speed gate halted the session
	RecordSkippedRejectedBySpeedGate
)

func (o RecordOutcome) String() string {
	switch o {
	case RecordAppended:
		return "appended"
	case RecordSkippedTooClose:
		return "skipped_too_close"
	case RecordSkippedRejectedBySpeedGate:
		return "skipped_rejected_by_speed_gate"
	default:
		return "unknown"
	}
}

// FailureReason identifies why a claim attempt was rejected
type FailureReason string

const (
	FailureInsufficientPoints   FailureReason = "INSUFFICIENT_POINTS"
	FailureInsufficientDistance FailureReason = "INSUFFICIENT_DISTANCE"
	FailureSelfIntersecting     FailureReason = "SELF_INTERSECTING"
	FailureAreaTooSmall         FailureReason = "AREA_TOO_SMALL"
	FailureOverspeed            FailureReason = "OVERSPEED"
	FailurePointInTerritory     FailureReason = "POINT_IN_TERRITORY"
	FailurePathCrossesTerritory FailureReason = "PATH_CROSSES_TERRITORY"
)

// ValidationResult is the outcome of validating a closed claim path
type ValidationResult struct {
	IsValid          bool          `json:"isValid"`
	Reason           FailureReason `json:"reason,omitempty"`
	Message          string        `json:"message,omitempty"`
	AreaSquareMeters float64       `json:"areaSquareMeters"`
}

// CollisionKind identifies the kind of hard collision detected
type CollisionKind string

const (
	CollisionPointInTerritory  CollisionKind = "POINT_IN_TERRITORY"
	CollisionPathCrossesBorder CollisionKind = "PATH_CROSSES_TERRITORY"
)

// WarningLevel is an ordered proximity tier against other territories
type WarningLevel int

const (
	WarningSafe WarningLevel = iota
	WarningCaution
	WarningWarning
	WarningDanger
	WarningViolation
)

func (w WarningLevel) String() string {
	switch w {
	case WarningSafe:
		return "safe"
	case WarningCaution:
		return "caution"
	case WarningWarning:
		return "warning"
	case WarningDanger:
		return "danger"
	case WarningViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// CollisionResult is the outcome of checking a point or path against the
// snapshot of other players' territories
type CollisionResult struct {
	HasCollision          bool          `json:"hasCollision"`
	Kind                  CollisionKind `json:"kind,omitempty"`
	Message               string        `json:"message,omitempty"`
	NearestDistanceMeters float64       `json:"nearestDistanceMeters"`
	WarningLevel          WarningLevel  `json:"warningLevel"`
}

// SessionState is the lifecycle state of a claim session
type SessionState string

const (
	SessionIdle      SessionState = "IDLE"
	SessionRecording SessionState = "RECORDING"
	SessionClosed    SessionState = "CLOSED"
	SessionAccepted  SessionState = "ACCEPTED"
	SessionRejected  SessionState = "REJECTED"
)

// SessionStatus is the API view of an active (or just-terminated) session
type SessionStatus struct {
	State                    SessionState      `json:"state"`
	PointCount               int               `json:"pointCount"`
	CumulativeDistanceMeters float64           `json:"cumulativeDistanceMeters"`
	CurrentSpeedKMH          float64           `json:"currentSpeedKmh"`
	SpeedWarning             bool              `json:"speedWarning"`
	IsClosed                 bool              `json:"isClosed"`
	StartedAt                time.Time         `json:"startedAt"`
	FailureReason            FailureReason     `json:"failureReason,omitempty"`
	Collision                *CollisionResult  `json:"collision,omitempty"`
	Validation               *ValidationResult `json:"validation,omitempty"`
}
