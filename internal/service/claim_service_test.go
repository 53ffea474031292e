package service

import (
	"errors"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/database"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/repository"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "claim-service-test")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}

	if err := database.Init(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	code := m.Run()

	database.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestService() *ClaimService {
	repo := repository.NewTerritoryRepository(database.GetDB())
	return NewClaimService(repo, config.DefaultThresholds)
}

// point converts local meter offsets around the given base to a GeoPoint
func point(baseLat, baseLon, northM, eastM float64) models.GeoPoint {
	return models.GeoPoint{
		Latitude:  baseLat + northM/111320.0,
		Longitude: baseLon + eastM/(111320.0*math.Cos(baseLat*math.Pi/180)),
	}
}

func fixAt(p models.GeoPoint, at time.Time) models.TimedFix {
	return models.TimedFix{Point: p, Timestamp: at, HorizontalAccuracy: 5}
}

// walkSquare drives a full square loop through the service, one fix every
// ten seconds at walking pace, and returns the final status. Only the last
// point enters the closure radius of the start; every earlier point past
// the minimum loop size stays well outside it.
func walkSquare(t *testing.T, s *ClaimService, ownerID string, baseLat, baseLon float64, start time.Time) models.SessionStatus {
	t.Helper()

	const side = 60.0
	step := side / 4

	var points []models.GeoPoint
	for i := 0; i <= 4; i++ { // south side, west to east
		points = append(points, point(baseLat, baseLon, 0, float64(i)*step))
	}
	for i := 1; i <= 4; i++ { // east side, up
		points = append(points, point(baseLat, baseLon, float64(i)*step, side))
	}
	for i := 1; i <= 4; i++ { // north side, back west
		points = append(points, point(baseLat, baseLon, side, side-float64(i)*step))
	}
	points = append(points, point(baseLat, baseLon, side-step, 0)) // west side, down
	points = append(points, point(baseLat, baseLon, side/3, 0))    // final fix closes the loop

	status, err := s.StartClaim(ownerID, fixAt(points[0], start))
	if err != nil {
		t.Fatalf("StartClaim failed: %v", err)
	}
	if status.State != models.SessionRecording {
		t.Fatalf("After start, state = %s, want %s", status.State, models.SessionRecording)
	}

	for i, p := range points[1:] {
		status, err = s.SubmitFix(ownerID, fixAt(p, start.Add(time.Duration(i+1)*10*time.Second)))
		if err != nil {
			t.Fatalf("SubmitFix %d failed: %v", i+1, err)
		}
		if i+1 < len(points)-1 && status.State != models.SessionRecording {
			t.Fatalf("Session left recording at fix %d of %d: %s", i+1, len(points), status.State)
		}
	}
	return status
}

func TestClaimAcceptedEndToEnd(t *testing.T) {
	s := newTestService()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	status := walkSquare(t, s, "alice-e2e", 46.0, 7.0, start)

	if status.State != models.SessionAccepted {
		t.Fatalf("Final state = %s, want %s (reason=%s)", status.State, models.SessionAccepted, status.FailureReason)
	}
	if status.Validation == nil || !status.Validation.IsValid {
		t.Fatal("Accepted claim must carry a valid validation result")
	}
	if a := status.Validation.AreaSquareMeters; a < 3300 || a > 3900 {
		t.Errorf("Claimed area = %.0f m², want ~3600", a)
	}

	count, err := s.repo.CountByOwner("alice-e2e")
	if err != nil {
		t.Fatalf("CountByOwner failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Stored territory count = %d, want 1", count)
	}

	if after := s.Status("alice-e2e"); after.State != models.SessionIdle {
		t.Errorf("After acceptance, status = %s, want %s", after.State, models.SessionIdle)
	}
}

func TestStartInsideExistingTerritoryRefused(t *testing.T) {
	s := newTestService()
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	status := walkSquare(t, s, "alice-owner", 46.1, 7.1, start)
	if status.State != models.SessionAccepted {
		t.Fatalf("Setup claim not accepted: %s", status.State)
	}

	inside := point(46.1, 7.1, 20, 20)
	_, err := s.StartClaim("bob-intruder", fixAt(inside, start.Add(time.Hour)))
	if err == nil {
		t.Fatal("Starting inside another player's territory must be refused")
	}

	var collErr *CollisionError
	if !errors.As(err, &collErr) {
		t.Fatalf("Expected CollisionError, got %T: %v", err, err)
	}
	if collErr.Result.Kind != models.CollisionPointInTerritory {
		t.Errorf("Collision kind = %s, want %s", collErr.Result.Kind, models.CollisionPointInTerritory)
	}

	if after := s.Status("bob-intruder"); after.State != models.SessionIdle {
		t.Errorf("Refused start must leave no session, status = %s", after.State)
	}
}

func TestTickDetectsPathEnteringTerritory(t *testing.T) {
	s := newTestService()
	start := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	status := walkSquare(t, s, "alice-home", 46.2, 7.2, start)
	if status.State != models.SessionAccepted {
		t.Fatalf("Setup claim not accepted: %s", status.State)
	}

	// Bob starts well clear of the territory and walks into it at a pace
	// the speed gate accepts
	bobStart := start.Add(2 * time.Hour)
	if _, err := s.StartClaim("bob-walker", fixAt(point(46.2, 7.2, 20, -300), bobStart)); err != nil {
		t.Fatalf("StartClaim failed: %v", err)
	}

	steps := []struct {
		east    float64
		elapsed time.Duration
	}{
		{-150, 60 * time.Second},
		{-60, 120 * time.Second},
		{20, 180 * time.Second}, // inside the territory
	}
	for _, st := range steps {
		if _, err := s.SubmitFix("bob-walker", fixAt(point(46.2, 7.2, 20, st.east), bobStart.Add(st.elapsed))); err != nil {
			t.Fatalf("SubmitFix failed: %v", err)
		}
	}

	final, err := s.Tick("bob-walker")
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if final.State != models.SessionRejected {
		t.Fatalf("State after sweep = %s, want %s", final.State, models.SessionRejected)
	}
	if final.FailureReason != models.FailurePointInTerritory {
		t.Errorf("FailureReason = %s, want %s", final.FailureReason, models.FailurePointInTerritory)
	}

	if after := s.Status("bob-walker"); after.State != models.SessionIdle {
		t.Errorf("Rejected session must be discarded, status = %s", after.State)
	}
}

func TestDuplicateStartRefused(t *testing.T) {
	s := newTestService()
	start := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

	if _, err := s.StartClaim("carol", fixAt(point(46.3, 7.3, 0, 0), start)); err != nil {
		t.Fatalf("StartClaim failed: %v", err)
	}
	if _, err := s.StartClaim("carol", fixAt(point(46.3, 7.3, 0, 0), start.Add(time.Second))); err == nil {
		t.Error("Second StartClaim for the same user must fail")
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	s := newTestService()
	start := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)

	if _, err := s.StartClaim("dave", fixAt(point(46.4, 7.4, 0, 0), start)); err != nil {
		t.Fatalf("StartClaim failed: %v", err)
	}
	s.Cancel("dave")

	if status := s.Status("dave"); status.State != models.SessionIdle {
		t.Errorf("After cancel, status = %s, want %s", status.State, models.SessionIdle)
	}

	// Cancel with no session is a no-op
	s.Cancel("dave")

	if _, err := s.SubmitFix("dave", fixAt(point(46.4, 7.4, 0, 15), start.Add(10*time.Second))); err == nil {
		t.Error("SubmitFix after cancel must fail")
	}
}

func TestStatusIdleWithoutSession(t *testing.T) {
	s := newTestService()
	if status := s.Status("nobody"); status.State != models.SessionIdle {
		t.Errorf("Status without session = %s, want %s", status.State, models.SessionIdle)
	}
}
