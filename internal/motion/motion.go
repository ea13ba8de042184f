package motion

import (
	"github.com/inamate/flyinout/internal/geometry"
)

// Frame is the render state of the target at one progress value.
type Frame struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

// FrameFunc maps eased progress (0..1) to a Frame.
type FrameFunc func(p float64) Frame

// Compose combines a path with scale and opacity interpolation. Scale and
// opacity grow linearly from their initial values to 1; an initial value of
// 1 or more pins them at 1.
func Compose(curve geometry.CurveFunc, initialScale, initialOpacity float64) FrameFunc {
	return func(p float64) Frame {
		pos := curve(p)
		return Frame{
			X:       pos.X,
			Y:       pos.Y,
			Scale:   grow(initialScale, p),
			Opacity: grow(initialOpacity, p),
		}
	}
}

func grow(initial, p float64) float64 {
	if initial < 1 {
		return initial + (1-initial)*p
	}
	return 1
}

// Position returns the translation part of the frame.
func (f Frame) Position() geometry.Vec2 {
	return geometry.Vec2{X: f.X, Y: f.Y}
}
