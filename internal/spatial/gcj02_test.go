package spatial

import (
	"math"
	"testing"
)

func TestToDisplayFrameShiftsInsideZone(t *testing.T) {
	// Central Beijing: the display frame must differ from the device frame
	lat, lon := ToDisplayFrame(39.9042, 116.4074)

	if lat == 39.9042 && lon == 116.4074 {
		t.Error("Display frame inside the conversion zone must not be the identity")
	}

	// The obfuscation offset is a few hundred meters at most
	shift := HaversineDistance(39.9042, 116.4074, lat, lon)
	if shift < 50 || shift > 1000 {
		t.Errorf("Implausible display-frame shift: %.0fm", shift)
	}
}

func TestRoundTripInsideZone(t *testing.T) {
	cases := []Point{
		{Lat: 39.9042, Lon: 116.4074}, // Beijing
		{Lat: 31.2304, Lon: 121.4737}, // Shanghai
		{Lat: 22.5431, Lon: 114.0579}, // Shenzhen
	}

	for _, p := range cases {
		dispLat, dispLon := ToDisplayFrame(p.Lat, p.Lon)
		backLat, backLon := ToDeviceFrame(dispLat, dispLon)

		if math.Abs(backLat-p.Lat) > 1e-5 || math.Abs(backLon-p.Lon) > 1e-5 {
			t.Errorf("Round trip drifted for (%.4f, %.4f): got (%.7f, %.7f)",
				p.Lat, p.Lon, backLat, backLon)
		}
	}
}

func TestIdentityOutsideZone(t *testing.T) {
	cases := []Point{
		{Lat: 46.0, Lon: 7.0},          // Alps
		{Lat: 40.7128, Lon: -74.0},     // New York
		{Lat: -33.8688, Lon: 151.2093}, // Sydney
	}

	for _, p := range cases {
		if lat, lon := ToDisplayFrame(p.Lat, p.Lon); lat != p.Lat || lon != p.Lon {
			t.Errorf("Forward transform outside zone not identity for (%.4f, %.4f)", p.Lat, p.Lon)
		}
		if lat, lon := ToDeviceFrame(p.Lat, p.Lon); lat != p.Lat || lon != p.Lon {
			t.Errorf("Inverse transform outside zone not identity for (%.4f, %.4f)", p.Lat, p.Lon)
		}
	}
}

func TestBatchConversion(t *testing.T) {
	points := []Point{
		{Lat: 39.9042, Lon: 116.4074},
		{Lat: 46.0, Lon: 7.0},
	}

	display := BatchToDisplayFrame(points)
	if len(display) != len(points) {
		t.Fatalf("Batch conversion changed length: %d", len(display))
	}

	if display[1] != points[1] {
		t.Error("Out-of-zone point must pass through batch conversion unchanged")
	}

	device := BatchToDeviceFrame(display)
	if math.Abs(device[0].Lat-points[0].Lat) > 1e-5 || math.Abs(device[0].Lon-points[0].Lon) > 1e-5 {
		t.Error("Batch round trip drifted for in-zone point")
	}
}
