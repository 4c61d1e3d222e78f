// Package profile synthesizes presentable depth and pressure curves for
// dives whose computers expose only summary statistics, not raw samples.
//
// The curves are estimates for display, not telemetry: deterministic,
// reproducible bit-for-bit for the same dive stats and unit mode, and
// labeled as estimated wherever they are shown.
package profile

import (
	"math"

	"github.com/olsenj65/arrowcrab/internal/dive"
)

// Units selects the constant set used for depth synthesis.
type Units int

const (
	Metric Units = iota
	Imperial
)

// Point is one sample of a synthesized curve. X is elapsed minutes,
// Y is depth or pressure depending on the curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Estimation model constants. Descent and ascent rates are typical
// recreational values; the safety stop only applies below the threshold
// depth where one would actually be performed.
const (
	descentRateM  = 18.0 // m/min
	descentRateFt = 60.0
	ascentRateM   = 9.0 // m/min
	ascentRateFt  = 30.0

	safetyStopDepthM   = 5.0
	safetyStopDepthFt  = 15.0
	safetyStopMinM     = 10.0 // stop only when max depth exceeds this
	safetyStopMinFt    = 30.0
	safetyStopSec      = 180.0
	surfacingGlideSec  = 60.0
	depthSampleSec     = 30.0
	pressureSampleMin  = 5
	pressureCurveExp   = 0.85
	oscillationPeriodS = 60.0
	oscillationAmp     = 2.0
)

// DepthCurve builds the estimated depth profile for a dive, sampled
// every 30 seconds over [0, durationSec].
//
// Phases: linear descent to max depth, plateau at max for the first 30%
// of bottom time, glide toward 1.2x average depth for the next 40%,
// cruise near 1.1x average with a slight oscillation, then ascent to
// the safety stop and a final surfacing glide. Every point is clamped
// to >= 0 and rounded to one decimal.
func DepthCurve(d dive.Dive, units Units) []Point {
	duration := float64(d.DurationSec)

	maxDepth := d.MaxDepthM
	avgDepth := d.AvgDepthM
	descentRate := descentRateM
	ascentRate := ascentRateM
	stopDepth := safetyStopDepthM
	stopMin := safetyStopMinM
	if units == Imperial {
		maxDepth = float64(d.MaxDepthFt)
		avgDepth = d.AvgDepthM * 3.28
		descentRate = descentRateFt
		ascentRate = ascentRateFt
		stopDepth = safetyStopDepthFt
		stopMin = safetyStopMinFt
	}

	descentTime := maxDepth / descentRate * 60
	stopTime := 0.0
	if maxDepth > stopMin {
		stopTime = safetyStopSec
	}
	ascentTime := (maxDepth-stopDepth)/ascentRate*60 + stopDepth/ascentRate*60
	bottomTime := duration - descentTime - ascentTime - stopTime

	points := make([]Point, 0, int(duration/depthSampleSec)+1)
	for t := 0.0; t <= duration; t += depthSampleSec {
		var depth float64
		switch {
		case t <= descentTime:
			depth = ratio(t, descentTime) * maxDepth
		case t <= descentTime+bottomTime*0.3:
			depth = maxDepth
		case t <= descentTime+bottomTime*0.7:
			progress := ratio(t-descentTime-bottomTime*0.3, bottomTime*0.4)
			depth = maxDepth - (maxDepth-avgDepth*1.2)*progress*0.5
		case t <= descentTime+bottomTime:
			depth = avgDepth*1.1 + math.Sin(t/oscillationPeriodS)*oscillationAmp
		case t <= duration-stopTime-surfacingGlideSec:
			progress := ratio(t-descentTime-bottomTime, duration-descentTime-bottomTime-stopTime-surfacingGlideSec)
			depth = avgDepth*1.1*(1-progress) + stopDepth*progress
		case t <= duration-surfacingGlideSec:
			depth = stopDepth
		default:
			progress := ratio(t-(duration-surfacingGlideSec), surfacingGlideSec)
			depth = stopDepth * (1 - progress)
		}

		points = append(points, Point{
			X: math.Round(t / 60),
			Y: math.Max(0, math.Round(depth*10)/10),
		})
	}

	return points
}

// PressureCurve builds the estimated tank pressure decay for a dive in
// PSI, sampled every 5 minutes plus a forced final point at exactly the
// recorded end pressure. The decay is concave (exponent 0.85): gas goes
// faster early in the dive when the diver is deepest.
func PressureCurve(d dive.Dive) []Point {
	start := float64(d.StartPSI)
	end := float64(d.EndPSI)
	duration := float64(d.DurationMin)

	if duration <= 0 {
		return []Point{{X: 0, Y: start}, {X: 0, Y: end}}
	}

	points := make([]Point, 0, d.DurationMin/pressureSampleMin+2)
	for t := 0.0; t <= duration; t += pressureSampleMin {
		curve := math.Pow(t/duration, pressureCurveExp)
		points = append(points, Point{X: t, Y: math.Round(start - (start-end)*curve)})
	}
	points = append(points, Point{X: duration, Y: end})

	return points
}

// Interpolate linearly evaluates a synthesized curve at x. Queries
// outside the sampled range clamp to the nearest endpoint; the result
// is never NaN and never extrapolated.
func Interpolate(points []Point, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if x <= points[0].X {
		return points[0].Y
	}
	last := points[len(points)-1]
	if x >= last.X {
		return last.Y
	}

	for i := 1; i < len(points); i++ {
		if x > points[i].X {
			continue
		}
		a, b := points[i-1], points[i]
		if b.X == a.X {
			return b.Y
		}
		frac := (x - a.X) / (b.X - a.X)
		return a.Y + (b.Y-a.Y)*frac
	}

	return last.Y
}

// ratio divides with a zero-denominator guard; degenerate phases (zero
// descent time on a zero-depth dive, zero bottom time on a short one)
// must yield a defined value, not NaN.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
