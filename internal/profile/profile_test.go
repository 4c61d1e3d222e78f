package profile

import (
	"math"
	"reflect"
	"testing"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

func sampleDive() dive.Dive {
	return dive.Dive{
		Number:      5,
		Date:        "2024-03-10",
		Time:        "09:00",
		DurationSec: 3000,
		DurationMin: 50,
		MaxDepthM:   18.3,
		MaxDepthFt:  60,
		AvgDepthM:   12.2,
		StartPSI:    3000,
		EndPSI:      750,
	}
}

func TestDepthCurve_Shape(t *testing.T) {
	points := DepthCurve(sampleDive(), Metric)

	if len(points) == 0 {
		t.Fatal("expected points")
	}
	if points[0].Y != 0 {
		t.Errorf("profile must start at the surface, got %v", points[0].Y)
	}
	if last := points[len(points)-1]; last.Y != 0 {
		t.Errorf("profile must end at the surface, got %v", last.Y)
	}

	reachedMax := false
	for _, p := range points {
		if p.Y < 0 {
			t.Fatalf("negative depth at x=%v: %v", p.X, p.Y)
		}
		if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("non-finite depth at x=%v", p.X)
		}
		if p.Y == 18.3 {
			reachedMax = true
		}
		// small oscillation may not exceed max depth by more than its amplitude
		if p.Y > 18.3+2 {
			t.Fatalf("depth %v exceeds max plus oscillation", p.Y)
		}
	}
	if !reachedMax {
		t.Error("profile never reaches max depth")
	}
}

func TestDepthCurve_Deterministic(t *testing.T) {
	d := sampleDive()
	a := DepthCurve(d, Metric)
	b := DepthCurve(d, Metric)
	if !reflect.DeepEqual(a, b) {
		t.Error("depth curve is not reproducible for identical input")
	}

	imp := DepthCurve(d, Imperial)
	if reflect.DeepEqual(a, imp) {
		t.Error("unit modes should produce different curves")
	}
}

func TestDepthCurve_Degenerate(t *testing.T) {
	testCases := []struct {
		name string
		d    dive.Dive
	}{
		{"zero duration", dive.Dive{MaxDepthM: 18, AvgDepthM: 12}},
		{"zero depth", dive.Dive{DurationSec: 1800, DurationMin: 30}},
		{"all zero", dive.Dive{}},
		{"shorter than descent", dive.Dive{DurationSec: 30, MaxDepthM: 40, AvgDepthM: 20}},
		{"shallow skips safety stop", dive.Dive{DurationSec: 1200, DurationMin: 20, MaxDepthM: 8, AvgDepthM: 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, units := range []Units{Metric, Imperial} {
				for _, p := range DepthCurve(tc.d, units) {
					if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) || p.Y < 0 {
						t.Fatalf("bad sample {%v %v}", p.X, p.Y)
					}
				}
			}
		})
	}
}

func TestPressureCurve(t *testing.T) {
	points := PressureCurve(sampleDive())

	if len(points) < 2 {
		t.Fatal("expected at least start and end points")
	}
	if points[0].X != 0 || points[0].Y != 3000 {
		t.Errorf("expected start {0 3000}, got %+v", points[0])
	}
	last := points[len(points)-1]
	if last.X != 50 || last.Y != 750 {
		t.Errorf("expected forced final {50 750}, got %+v", last)
	}

	// Monotonic decay, never extrapolated past the dive
	prev := math.Inf(1)
	for _, p := range points {
		if p.Y > prev {
			t.Errorf("pressure rose at x=%v: %v -> %v", p.X, prev, p.Y)
		}
		if p.X < 0 || p.X > 50 {
			t.Errorf("sample outside [0, durationMin]: x=%v", p.X)
		}
		prev = p.Y
	}
}

func TestPressureCurve_Concavity(t *testing.T) {
	points := PressureCurve(sampleDive())
	// With exponent < 1 the first interval drops more than a linear decay would
	linearDrop := (3000.0 - 750.0) / 50 * 5
	firstDrop := points[0].Y - points[1].Y
	if firstDrop <= linearDrop {
		t.Errorf("expected concave decay: first drop %v <= linear %v", firstDrop, linearDrop)
	}
}

func TestPressureCurve_ZeroDuration(t *testing.T) {
	points := PressureCurve(dive.Dive{StartPSI: 3000, EndPSI: 2900})
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Y != 3000 || points[1].Y != 2900 {
		t.Errorf("unexpected points: %+v", points)
	}
}

func TestInterpolate(t *testing.T) {
	points := []Point{{X: 0, Y: 0}, {X: 2, Y: 10}, {X: 4, Y: 20}}

	testCases := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"exact sample", 2, 10},
		{"between samples", 1, 5},
		{"between later samples", 3, 15},
		{"before range clamps", -5, 0},
		{"after range clamps", 100, 20},
		{"at start", 0, 0},
		{"at end", 4, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpolate(points, tc.x)
			if got != tc.expected {
				t.Errorf("Interpolate(%v): expected %v, got %v", tc.x, tc.expected, got)
			}
		})
	}
}

func TestInterpolate_Degenerate(t *testing.T) {
	if got := Interpolate(nil, 5); got != 0 {
		t.Errorf("empty curve: expected 0, got %v", got)
	}
	single := []Point{{X: 3, Y: 7}}
	for _, x := range []float64{-1, 3, 10} {
		if got := Interpolate(single, x); got != 7 {
			t.Errorf("single point at x=%v: expected 7, got %v", x, got)
		}
	}
	// Duplicate X values (rounded-minute samples) must not divide by zero
	dup := []Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 4}}
	got := Interpolate(dup, 1)
	if math.IsNaN(got) {
		t.Error("NaN on duplicate X")
	}
}

func TestInterpolate_NeverOutOfBounds(t *testing.T) {
	curve := DepthCurve(sampleDive(), Metric)
	for _, x := range []float64{-100, -1, 0, 25, 50, 51, 1000} {
		y := Interpolate(curve, x)
		if math.IsNaN(y) || y < 0 {
			t.Errorf("Interpolate(%v) = %v", x, y)
		}
	}
	if Interpolate(curve, -100) != curve[0].Y {
		t.Error("pre-range query must clamp to first sample")
	}
	if Interpolate(curve, 1e6) != curve[len(curve)-1].Y {
		t.Error("post-range query must clamp to last sample")
	}
}
