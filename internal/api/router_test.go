package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/database"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "router-test")
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

func testRouter() *gin.Engine {
	cfg := &config.Config{
		Port:       "8080",
		JWTSecret:  testSecret,
		Thresholds: config.DefaultThresholds,
	}
	return SetupRouter(cfg)
}

func signToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestTerritoriesArePublic(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/territories", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/territories = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestClaimsRequireAuth(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Unauthenticated claims request = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestClaimsRejectWrongSecret(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "alice", "some-other-secret"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Badly signed token = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestClaimStatusWithValidToken(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "alice", testSecret))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/claims/status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.State != "IDLE" {
		t.Errorf("state = %q, want IDLE", envelope.Data.State)
	}
}

func TestClaimStartAndStatusFlow(t *testing.T) {
	r := testRouter()
	token := signToken(t, "flow-user", testSecret)

	body := `{"latitude": 46.5, "longitude": 7.5, "timestamp": 1748772000000, "accuracy": 5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/start", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/claims/start = %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/claims/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	var envelope struct {
		Data struct {
			State      string `json:"state"`
			PointCount int    `json:"pointCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if envelope.Data.State != "RECORDING" {
		t.Errorf("state = %q, want RECORDING", envelope.Data.State)
	}
	if envelope.Data.PointCount != 1 {
		t.Errorf("pointCount = %d, want 1", envelope.Data.PointCount)
	}

	// Cancel so the router-level tests leave no session behind
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/claims/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/claims/cancel = %d", w.Code)
	}
}

func TestInvalidFixPayloadRejected(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims/start", strings.NewReader(`{"latitude": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "bad-payload-user", testSecret))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Invalid payload = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
