package domain

import (
	"math"
	"testing"
)

func TestDistanceToNearTwentyMeters(t *testing.T) {
	// 0.00018 degrees of latitude is ~20 m at the equator.
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0.00018, Longitude: 0}

	got := a.DistanceTo(b)
	want := 20.0
	if math.Abs(got-want)/want > 0.01 {
		t.Fatalf("distance = %.4f m, want within 1%% of %.1f m", got, want)
	}
}

func TestDistanceToSymmetric(t *testing.T) {
	a := Coordinate{Latitude: 9.005401, Longitude: 38.763611}
	b := Coordinate{Latitude: 9.030000, Longitude: 38.740000}

	ab := a.DistanceTo(b)
	ba := b.DistanceTo(a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %.9f vs %.9f", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("expected positive distance, got %.4f", ab)
	}
}

func TestDistanceToZero(t *testing.T) {
	c := Coordinate{Latitude: 9.005401, Longitude: 38.763611}
	if d := c.DistanceTo(c); d != 0 {
		t.Fatalf("distance to self = %.9f, want 0", d)
	}
}

func TestParseTravelMode(t *testing.T) {
	for _, s := range []string{"foot", "bike", "car"} {
		mode, err := ParseTravelMode(s)
		if err != nil {
			t.Fatalf("ParseTravelMode(%q): unexpected error: %v", s, err)
		}
		if string(mode) != s {
			t.Fatalf("ParseTravelMode(%q) = %q", s, mode)
		}
	}

	if _, err := ParseTravelMode("plane"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}
