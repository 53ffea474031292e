package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/landrun/territory-backend-go/internal/claim"
	"github.com/landrun/territory-backend-go/internal/collision"
	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/repository"
)

// ClaimService manages one active claim session per user and orchestrates
// the engine: fixes flow through the session's recorder and closure
// detector, collision sweeps run on a coarser cadence against a consistent
// territory snapshot, and an accepted claim is persisted as a territory.
type ClaimService struct {
	repo       *repository.TerritoryRepository
	engine     *collision.Engine
	thresholds config.ClaimThresholds

	mu        sync.Mutex
	sessions  map[string]*claim.Session
	snapshots map[string]*territorySnapshot
}

// territorySnapshot is one consistent read-only view of the other players'
// territories. A check call always uses a single snapshot reference; a
// refresh swaps the whole snapshot, never mutates it.
type territorySnapshot struct {
	territories []models.Territory
	fetchedAt   time.Time
}

// NewClaimService creates a claim service
func NewClaimService(repo *repository.TerritoryRepository, thresholds config.ClaimThresholds) *ClaimService {
	return &ClaimService{
		repo:       repo,
		engine:     collision.NewEngine(thresholds),
		thresholds: thresholds,
		sessions:   make(map[string]*claim.Session),
		snapshots:  make(map[string]*territorySnapshot),
	}
}

// StartClaim begins a claim session at the given fix. Starting inside
// another player's territory is refused outright.
func (s *ClaimService) StartClaim(ownerID string, fix models.TimedFix) (models.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[ownerID]; ok {
		return models.SessionStatus{}, fmt.Errorf("a claim session is already active for user %s", ownerID)
	}

	snapshot, err := s.snapshotLocked(ownerID, time.Now())
	if err != nil {
		return models.SessionStatus{}, err
	}

	result := s.engine.CheckStart(fix.Point, ownerID, snapshot.territories)
	if result.HasCollision {
		return models.SessionStatus{}, &CollisionError{Result: result}
	}

	session := claim.NewSession(s.thresholds, fix.Timestamp)
	if _, err := session.OnFix(fix); err != nil {
		return models.SessionStatus{}, err
	}
	session.RecordCollision(result)
	session.MarkCollisionSweep(time.Now())
	s.sessions[ownerID] = session

	log.Printf("[ClaimService] Session started (owner=%s)", ownerID)
	return session.Status(), nil
}

// SubmitFix advances the user's session with one fix. On closure the claim
// is validated and, if accepted, uploaded to the territory store. Terminal
// states end the session; the returned status carries the final verdict.
func (s *ClaimService) SubmitFix(ownerID string, fix models.TimedFix) (models.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[ownerID]
	if !ok {
		return models.SessionStatus{}, fmt.Errorf("no active claim session for user %s", ownerID)
	}

	outcome, err := session.OnFix(fix)
	if err != nil {
		return models.SessionStatus{}, err
	}

	now := time.Now()
	if outcome == models.RecordAppended &&
		session.State() == models.SessionRecording &&
		session.ShouldSweepCollisions(now) {
		if err := s.sweepLocked(ownerID, session, now); err != nil {
			return models.SessionStatus{}, err
		}
	}

	if session.State() == models.SessionClosed {
		if err := s.finalizeLocked(ownerID, session); err != nil {
			return models.SessionStatus{}, err
		}
	}

	return s.concludeLocked(ownerID, session), nil
}

// Tick runs a full collision sweep for the user's session; intended to be
// driven by the caller's coarse timer
func (s *ClaimService) Tick(ownerID string) (models.SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[ownerID]
	if !ok {
		return models.SessionStatus{}, fmt.Errorf("no active claim session for user %s", ownerID)
	}

	if err := s.sweepLocked(ownerID, session, time.Now()); err != nil {
		return models.SessionStatus{}, err
	}

	return s.concludeLocked(ownerID, session), nil
}

// Cancel discards the user's session. Cancellation is cooperative: no
// in-flight work needs to be awaited because the engine performs none.
func (s *ClaimService) Cancel(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[ownerID]; ok {
		delete(s.sessions, ownerID)
		log.Printf("[ClaimService] Session cancelled (owner=%s)", ownerID)
	}
}

// Status reports the user's session state; Idle when none is active
func (s *ClaimService) Status(ownerID string) models.SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[ownerID]
	if !ok {
		return models.SessionStatus{State: models.SessionIdle}
	}
	return session.Status()
}

// sweepLocked runs the path collision check against a fresh-enough snapshot
func (s *ClaimService) sweepLocked(ownerID string, session *claim.Session, now time.Time) error {
	snapshot, err := s.snapshotLocked(ownerID, now)
	if err != nil {
		return err
	}

	result := s.engine.CheckPath(session.Path(), ownerID, snapshot.territories)
	session.RecordCollision(result)
	session.MarkCollisionSweep(now)

	if result.HasCollision {
		log.Printf("[ClaimService] Collision violation (owner=%s, kind=%s)", ownerID, result.Kind)
	}
	return nil
}

// finalizeLocked validates a closed session and uploads an accepted claim
func (s *ClaimService) finalizeLocked(ownerID string, session *claim.Session) error {
	result, err := session.Validate()
	if err != nil {
		return err
	}

	if !result.IsValid {
		log.Printf("[ClaimService] Claim rejected (owner=%s, reason=%s)", ownerID, result.Reason)
		return nil
	}

	upload, err := session.BuildUpload(ownerID)
	if err != nil {
		return err
	}

	territory, err := s.repo.Insert(upload)
	if err != nil {
		return fmt.Errorf("failed to store territory: %w", err)
	}

	// The new territory must appear in subsequent snapshots immediately
	delete(s.snapshots, ownerID)

	log.Printf("[ClaimService] Claim accepted (owner=%s, territory=%d, area=%.0f m²)",
		ownerID, territory.ID, territory.AreaSquareMeters)
	return nil
}

// concludeLocked captures the status and removes the session if it reached
// a terminal state, returning the user to Idle
func (s *ClaimService) concludeLocked(ownerID string, session *claim.Session) models.SessionStatus {
	status := session.Status()
	if status.State == models.SessionAccepted || status.State == models.SessionRejected {
		delete(s.sessions, ownerID)
	}
	return status
}

// snapshotLocked returns the cached territory snapshot for the owner,
// refreshing it when stale
func (s *ClaimService) snapshotLocked(ownerID string, now time.Time) (*territorySnapshot, error) {
	snap, ok := s.snapshots[ownerID]
	if ok && now.Sub(snap.fetchedAt) < s.thresholds.CollisionCheckInterval {
		return snap, nil
	}

	territories, err := s.repo.ListActiveExcept(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load territory snapshot: %w", err)
	}

	snap = &territorySnapshot{territories: territories, fetchedAt: now}
	s.snapshots[ownerID] = snap
	return snap, nil
}

// CollisionError wraps a hard collision result as an error for the API layer
type CollisionError struct {
	Result models.CollisionResult
}

func (e *CollisionError) Error() string {
	return e.Result.Message
}
