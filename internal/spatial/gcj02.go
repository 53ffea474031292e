package spatial

import "math"

// Conversion between the device frame (WGS-84, what the location provider
// reports) and the map display frame (GCJ-02, what Chinese map tiles use).
// The forward transform is the closed-form empirical correction published
// for GCJ-02; it only applies inside the mainland bounding box and is the
// identity elsewhere. The inverse has no closed form and is computed by
// fixed-point iteration. All functions are pure and safe for concurrent use.

const (
	// Krasovsky 1940 ellipsoid, used by the GCJ-02 obfuscation
	gcjSemiMajorAxis = 6378245.0
	gcjEccentricity2 = 0.00669342162296594323

	// Iteration stops when both axis errors fall below this, in degrees
	gcjInverseEpsilon = 1e-6
	gcjInverseMaxIter = 30
)

// InConversionZone reports whether the point lies inside the bounding box
// where the display-frame correction applies
func InConversionZone(lat, lon float64) bool {
	return lon >= 72.004 && lon <= 137.8347 && lat >= 0.8293 && lat <= 55.8271
}

// ToDisplayFrame converts a device-frame (WGS-84) coordinate to the map
// display frame (GCJ-02). Identity outside the conversion zone.
func ToDisplayFrame(lat, lon float64) (float64, float64) {
	if !InConversionZone(lat, lon) {
		return lat, lon
	}

	dLat := transformLat(lon-105.0, lat-35.0)
	dLon := transformLon(lon-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - gcjEccentricity2*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((gcjSemiMajorAxis * (1 - gcjEccentricity2)) / (magic * sqrtMagic) * math.Pi)
	dLon = (dLon * 180.0) / (gcjSemiMajorAxis / sqrtMagic * math.Cos(radLat) * math.Pi)

	return lat + dLat, lon + dLon
}

// ToDeviceFrame converts a display-frame (GCJ-02) coordinate back to the
// device frame (WGS-84) by fixed-point iteration: repeatedly apply the
// forward transform to the working estimate and subtract the forward error.
// The loop is bounded; on non-convergence the best estimate is returned.
func ToDeviceFrame(lat, lon float64) (float64, float64) {
	if !InConversionZone(lat, lon) {
		return lat, lon
	}

	estLat, estLon := lat, lon
	for i := 0; i < gcjInverseMaxIter; i++ {
		fwdLat, fwdLon := ToDisplayFrame(estLat, estLon)
		errLat := fwdLat - lat
		errLon := fwdLon - lon
		estLat -= errLat
		estLon -= errLon
		if math.Abs(errLat) < gcjInverseEpsilon && math.Abs(errLon) < gcjInverseEpsilon {
			break
		}
	}

	return estLat, estLon
}

// BatchToDisplayFrame converts a sequence of points to the display frame
func BatchToDisplayFrame(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		lat, lon := ToDisplayFrame(p.Lat, p.Lon)
		out[i] = Point{Lat: lat, Lon: lon}
	}
	return out
}

// BatchToDeviceFrame converts a sequence of points to the device frame
func BatchToDeviceFrame(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		lat, lon := ToDeviceFrame(p.Lat, p.Lon)
		out[i] = Point{Lat: lat, Lon: lon}
	}
	return out
}

func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLon(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}
