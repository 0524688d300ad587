package types

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Berlin to Hamburg, roughly 255 km.
	berlin := GeographyPoint{Lat: 52.52, Lng: 13.405}
	hamburg := GeographyPoint{Lat: 53.551, Lng: 9.993}

	got := berlin.DistanceKm(hamburg)
	if math.Abs(got-255) > 5 {
		t.Fatalf("expected ~255km, got %.1f", got)
	}
	if berlin.DistanceKm(berlin) != 0 {
		t.Fatal("distance to self must be zero")
	}
	if math.Abs(berlin.DistanceKm(hamburg)-hamburg.DistanceKm(berlin)) > 1e-9 {
		t.Fatal("distance must be symmetric")
	}
}

func TestScanWKT(t *testing.T) {
	var p GeographyPoint
	if err := p.Scan("SRID=4326;POINT(13.405000 52.520000)"); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if p.Lat != 52.52 || p.Lng != 13.405 {
		t.Fatalf("unexpected point %+v", p)
	}
}

func TestScanNilResets(t *testing.T) {
	p := GeographyPoint{Lat: 1, Lng: 2}
	if err := p.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if p.Lat != 0 || p.Lng != 0 {
		t.Fatalf("expected zero point, got %+v", p)
	}
}

func TestValueRoundTrip(t *testing.T) {
	p := GeographyPoint{Lat: 40.7128, Lng: -74.006}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var scanned GeographyPoint
	if err := scanned.Scan(v.(string)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if math.Abs(scanned.Lat-p.Lat) > 1e-6 || math.Abs(scanned.Lng-p.Lng) > 1e-6 {
		t.Fatalf("round trip mismatch: %+v vs %+v", scanned, p)
	}
}
