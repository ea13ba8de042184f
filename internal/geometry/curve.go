package geometry

import "math"

// CurveFunc maps normalized progress (0..1) to an offset from the rest
// position.
type CurveFunc func(p float64) Vec2

// BuildCurve returns the path for a displacement and a sweep angle in degrees.
// An angle of 0 selects the straight path; any other angle the circular arc.
// When no finite arc exists (zero displacement, or a sweep that is a whole
// number of turns) the straight path is used instead.
func BuildCurve(displacement Vec2, angleDeg float64) CurveFunc {
	if angleDeg == 0 {
		return StraightPath(displacement)
	}

	arc, ok := NewArc(displacement, angleDeg)
	if !ok {
		return StraightPath(displacement)
	}
	return arc.At
}

// StraightPath returns f(p) = d·(1−p)·p: a symmetric bow that starts and
// ends at the origin and peaks at d/4 when p = 0.5.
func StraightPath(d Vec2) CurveFunc {
	return func(p float64) Vec2 {
		k := (1 - p) * p
		return Vec2{d.X * k, d.Y * k}
	}
}

// Arc is a circular arc around Anchor running from the displacement
// (p = 0) to the origin (p = 1).
type Arc struct {
	Anchor Vec2
	Radius float64
	Start  float64 // radians
	Sweep  float64 // radians
}

// NewArc builds the arc that sweeps angleDeg degrees around the apex of the
// isosceles triangle (origin, displacement, anchor). ok is false when the
// anchor would be undefined or at infinity.
func NewArc(displacement Vec2, angleDeg float64) (Arc, bool) {
	anchor, ok := AnchorPoint(displacement.Scale(0.5), angleDeg/2)
	if !ok {
		return Arc{}, false
	}

	toStart := displacement.Sub(anchor)
	return Arc{
		Anchor: anchor,
		Radius: anchor.Len(),
		Start:  math.Atan2(toStart.Y, toStart.X),
		Sweep:  angleDeg * math.Pi / 180,
	}, true
}

// At returns the point at progress p.
func (a Arc) At(p float64) Vec2 {
	theta := a.Start + p*a.Sweep
	return Vec2{
		X: a.Anchor.X + a.Radius*math.Cos(theta),
		Y: a.Anchor.Y + a.Radius*math.Sin(theta),
	}
}

// AnchorPoint finds the apex of the isosceles triangle whose base runs from
// the origin to 2·mid and whose apex angle is 2·halfAngleDeg. The result is
// rounded to whole pixels.
//
// The apex sits on the perpendicular bisector of the base. Seen from the
// origin it lies (90° − half) away from the midpoint direction, at a signed
// distance of |mid| / cos(90° − half); the sign keeps negative and reflex
// sweeps on the correct side of the base.
func AnchorPoint(mid Vec2, halfAngleDeg float64) (Vec2, bool) {
	midDist := mid.Len()
	if midDist == 0 {
		return Vec2{}, false
	}

	originRad := (90 - halfAngleDeg) * math.Pi / 180
	cos := math.Cos(originRad)
	sin := math.Sin(originRad)
	if math.Abs(cos) < 1e-12 {
		return Vec2{}, false
	}

	unit := mid.Scale(1 / midDist)
	dir := Vec2{
		X: unit.X*cos + unit.Y*sin,
		Y: -unit.X*sin + unit.Y*cos,
	}

	return dir.Scale(midDist / cos).Round(), true
}
