package claim

import (
	"math"
	"time"

	"github.com/landrun/territory-backend-go/internal/models"
)

// Test tracks are laid out in meters around a base point in the Alps and
// converted to degrees with the local meters-per-degree factors; plenty
// accurate at the sub-kilometre scale these tests use.
const (
	baseLat = 46.0
	baseLon = 7.0
)

func gp(northM, eastM float64) models.GeoPoint {
	return models.GeoPoint{
		Latitude:  baseLat + northM/111320.0,
		Longitude: baseLon + eastM/(111320.0*math.Cos(baseLat*math.Pi/180)),
	}
}

func testStart() time.Time {
	return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func fixAt(p models.GeoPoint, t time.Time) models.TimedFix {
	return models.TimedFix{Point: p, Timestamp: t, HorizontalAccuracy: 5}
}

// squareWalk returns the fixes of a closed square walk: the south-west
// corner, then four points per side spaced sideM/4 apart. The west side
// stops at sideM/3 from the start, so with a 60m side every point from the
// tenth onward stays outside the 30m closure radius until the final fix
// enters it. 15 fixes, one every stepInterval.
func squareWalk(sideM float64, start time.Time, stepInterval time.Duration) []models.TimedFix {
	step := sideM / 4
	var coords []models.GeoPoint

	for i := 0; i <= 4; i++ { // south side, west to east
		coords = append(coords, gp(0, float64(i)*step))
	}
	for i := 1; i <= 4; i++ { // east side, up
		coords = append(coords, gp(float64(i)*step, sideM))
	}
	for i := 1; i <= 4; i++ { // north side, back west
		coords = append(coords, gp(sideM, sideM-float64(i)*step))
	}
	coords = append(coords, gp(sideM-step, 0)) // west side, down
	coords = append(coords, gp(sideM/3, 0))    // final fix, inside the closure radius

	fixes := make([]models.TimedFix, len(coords))
	for i, p := range coords {
		fixes[i] = fixAt(p, start.Add(time.Duration(i)*stepInterval))
	}
	return fixes
}
