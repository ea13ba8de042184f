package easing

import "math"

// Func maps raw progress in [0,1] to eased progress.
type Func func(t float64) float64

const (
	newtonIterations         = 4
	newtonMinSlope           = 0.001
	subdivisionPrecision     = 0.0000001
	subdivisionMaxIterations = 10

	splineTableSize = 11
	sampleStepSize  = 1.0 / (splineTableSize - 1.0)
)

// NewBezier returns the easing function of the CSS-style cubic bezier
// (0,0) (x1,y1) (x2,y2) (1,1). x1 and x2 must lie in [0,1].
//
// x(t) is inverted with a precomputed sample table, refined with
// Newton-Raphson where the curve is steep enough and with binary
// subdivision where it is not.
func NewBezier(x1, y1, x2, y2 float64) Func {
	if x1 == y1 && x2 == y2 {
		return func(t float64) float64 { return t }
	}

	var samples [splineTableSize]float64
	for i := range samples {
		samples[i] = calcBezier(float64(i)*sampleStepSize, x1, x2)
	}

	tForX := func(x float64) float64 {
		intervalStart := 0.0
		current := 1
		last := splineTableSize - 1

		for ; current != last && samples[current] <= x; current++ {
			intervalStart += sampleStepSize
		}
		current--

		dist := (x - samples[current]) / (samples[current+1] - samples[current])
		guess := intervalStart + dist*sampleStepSize

		slope := bezierSlope(guess, x1, x2)
		switch {
		case slope >= newtonMinSlope:
			return newtonRaphson(x, guess, x1, x2)
		case slope == 0:
			return guess
		default:
			return binarySubdivide(x, intervalStart, intervalStart+sampleStepSize, x1, x2)
		}
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return calcBezier(tForX(t), y1, y2)
	}
}

// calcBezier evaluates one axis of the curve at parameter t, with the
// endpoints fixed at 0 and 1.
func calcBezier(t, a1, a2 float64) float64 {
	return ((coeffA(a1, a2)*t+coeffB(a1, a2))*t + coeffC(a1)) * t
}

// bezierSlope is dx/dt.
func bezierSlope(t, a1, a2 float64) float64 {
	return 3*coeffA(a1, a2)*t*t + 2*coeffB(a1, a2)*t + coeffC(a1)
}

func coeffA(a1, a2 float64) float64 { return 1 - 3*a2 + 3*a1 }
func coeffB(a1, a2 float64) float64 { return 3*a2 - 6*a1 }
func coeffC(a1 float64) float64     { return 3 * a1 }

func newtonRaphson(x, guess, x1, x2 float64) float64 {
	for i := 0; i < newtonIterations; i++ {
		slope := bezierSlope(guess, x1, x2)
		if slope == 0 {
			return guess
		}
		guess -= (calcBezier(guess, x1, x2) - x) / slope
	}
	return guess
}

func binarySubdivide(x, a, b, x1, x2 float64) float64 {
	var t, current float64
	for i := 0; i < subdivisionMaxIterations; i++ {
		t = a + (b-a)/2
		current = calcBezier(t, x1, x2) - x
		if current > 0 {
			b = t
		} else {
			a = t
		}
		if math.Abs(current) <= subdivisionPrecision {
			break
		}
	}
	return t
}
