package geometry

import "math"

// Vec2 is a 2D point or displacement in pixels. Y grows downward, as on screen.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Round rounds both components to the nearest integer. Halves round up,
// so -1.5 becomes -1.
func (v Vec2) Round() Vec2 {
	return Vec2{roundHalfUp(v.X), roundHalfUp(v.Y)}
}

func roundHalfUp(x float64) float64 {
	r := math.Floor(x + 0.5)
	if r == 0 {
		return 0
	}
	return r
}
