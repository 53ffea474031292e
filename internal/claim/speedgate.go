package claim

import (
	"time"

	"github.com/landrun/territory-backend-go/internal/config"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/spatial"
)

// SpeedGate rejects or flags fixes implying implausible movement speed.
// Hysteresis tolerates single-fix GPS spikes: a halt requires a streak of
// consecutive overspeed fixes, and the first warmup fixes of a session
// bypass rejection while the provider's accuracy stabilizes.
type SpeedGate struct {
	thresholds config.ClaimThresholds

	lastPoint *models.GeoPoint
	lastTime  time.Time

	window   []float64 // recent instantaneous speeds, m/s
	fixCount int
	streak   int
	warning  bool
	halted   bool
}

// NewSpeedGate creates a speed gate with the given thresholds
func NewSpeedGate(thresholds config.ClaimThresholds) *SpeedGate {
	return &SpeedGate{thresholds: thresholds}
}

// Evaluate consumes one fix and decides whether recording may continue.
// The violation streak counts instantaneous speeds so a lone jitter spike
// cannot poison the rolling window into a halt; the window average is only
// the reported current speed.
func (g *SpeedGate) Evaluate(fix models.TimedFix) models.SpeedDecision {
	if g.halted {
		return models.SpeedRejectAndHalt
	}

	g.fixCount++

	if g.lastPoint == nil {
		g.accept(fix)
		return models.SpeedAccept
	}

	elapsed := fix.Timestamp.Sub(g.lastTime).Seconds()
	if elapsed <= 0 {
		// Out-of-order or duplicate timestamp; nothing to measure
		return models.SpeedAccept
	}

	distance := spatial.Distance(toSpatial(*g.lastPoint), toSpatial(fix.Point))
	speedMPS := distance / elapsed
	g.pushSpeed(speedMPS)

	speedKMH := speedMPS * 3.6
	inWarmup := g.fixCount <= g.thresholds.WarmupFixes

	switch {
	case speedKMH > g.thresholds.SpeedStopKMH:
		g.streak++
		if !inWarmup && g.streak >= g.thresholds.OverspeedStreak {
			g.halted = true
			return models.SpeedRejectAndHalt
		}
		g.warning = true
		g.accept(fix)
		return models.SpeedAcceptWithWarning

	case speedKMH > g.thresholds.SpeedWarnKMH:
		// Between warn and stop the streak holds but does not grow
		g.warning = true
		g.accept(fix)
		return models.SpeedAcceptWithWarning

	default:
		g.streak = 0
		g.warning = false
		g.accept(fix)
		return models.SpeedAccept
	}
}

// CurrentSpeedKMH returns the smoothed current speed in km/h
func (g *SpeedGate) CurrentSpeedKMH() float64 {
	if len(g.window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range g.window {
		sum += s
	}
	return sum / float64(len(g.window)) * 3.6
}

// Warning reports whether the gate currently has an active speed warning
func (g *SpeedGate) Warning() bool {
	return g.warning
}

// Halted reports whether the gate has terminally rejected the session
func (g *SpeedGate) Halted() bool {
	return g.halted
}

func (g *SpeedGate) accept(fix models.TimedFix) {
	p := fix.Point
	g.lastPoint = &p
	g.lastTime = fix.Timestamp
}

func (g *SpeedGate) pushSpeed(speedMPS float64) {
	g.window = append(g.window, speedMPS)
	if n := g.thresholds.SpeedWindowSize; n > 0 && len(g.window) > n {
		g.window = g.window[len(g.window)-n:]
	}
}
