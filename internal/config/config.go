package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	Thresholds ClaimThresholds
}

// ClaimThresholds defines the tunable parameters of the claim engine.
// Defaults suit on-foot play; everything is overridable per deployment.
type ClaimThresholds struct {
	// Speed gate
	SpeedWarnKMH    float64 // warn above this speed
	SpeedStopKMH    float64 // halt the session above this speed
	OverspeedStreak int     // consecutive overspeed fixes required to halt
	SpeedWindowSize int     // rolling window of instantaneous speeds
	WarmupFixes     int     // initial fixes that bypass rejection

	// Path recording
	MinSpacingMeters float64 // minimum distance between recorded points

	// Closure
	MinClosurePoints    int     // minimum recorded points before closure
	ClosureRadiusMeters float64 // end-to-start distance considered closed

	// Self-intersection
	IntersectSkipWindow int // head/tail edges excluded near closure

	// Validation
	MinPathPoints       int
	MinDistanceMeters   float64
	MinAreaSquareMeters float64

	// Collision proximity bands (meters)
	ProximityCautionMeters float64
	ProximityWarningMeters float64
	ProximityDangerMeters  float64

	// Minimum interval between full collision sweeps
	CollisionCheckInterval time.Duration
}

// DefaultThresholds provides the default claim engine thresholds
var DefaultThresholds = ClaimThresholds{
	SpeedWarnKMH:    15.0, // brisk run
	SpeedStopKMH:    30.0, // clearly vehicular
	OverspeedStreak: 2,
	SpeedWindowSize: 3,
	WarmupFixes:     3,

	MinSpacingMeters: 10.0,

	MinClosurePoints:    10,
	ClosureRadiusMeters: 30.0,

	IntersectSkipWindow: 2,

	MinPathPoints:       10,
	MinDistanceMeters:   50.0,
	MinAreaSquareMeters: 100.0,

	ProximityCautionMeters: 100.0,
	ProximityWarningMeters: 50.0,
	ProximityDangerMeters:  25.0,

	CollisionCheckInterval: 10 * time.Second,
}

// Load loads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/territories.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	thresholds := DefaultThresholds
	thresholds.SpeedWarnKMH = envFloat("CLAIM_SPEED_WARN_KMH", thresholds.SpeedWarnKMH)
	thresholds.SpeedStopKMH = envFloat("CLAIM_SPEED_STOP_KMH", thresholds.SpeedStopKMH)
	thresholds.MinSpacingMeters = envFloat("CLAIM_MIN_SPACING_M", thresholds.MinSpacingMeters)
	thresholds.ClosureRadiusMeters = envFloat("CLAIM_CLOSURE_RADIUS_M", thresholds.ClosureRadiusMeters)
	thresholds.MinAreaSquareMeters = envFloat("CLAIM_MIN_AREA_M2", thresholds.MinAreaSquareMeters)

	return &Config{
		Port:       port,
		DBPath:     dbPath,
		JWTSecret:  jwtSecret,
		Thresholds: thresholds,
	}
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
