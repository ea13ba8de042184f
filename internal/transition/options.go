package transition

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/layout"
)

// ErrInvalidOptions is returned when options fail validation.
var ErrInvalidOptions = errors.New("invalid options")

// Options configures one fly-in/fly-out transition.
type Options struct {
	// X and Y are the CSS lengths the target is offset by when hidden.
	X string
	Y string
	// Angle is the arc swept on the way in, in degrees. 0 selects the
	// straight path.
	Angle          float64
	Duration       time.Duration
	InitialScale   float64
	InitialOpacity float64
	Easing         easing.Value
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		X:              "150px",
		Y:              "150px",
		Angle:          90,
		Duration:       400 * time.Millisecond,
		InitialScale:   0.3,
		InitialOpacity: 0.1,
		Easing:         easing.Named(easing.EaseInOut),
	}
}

// Validate checks everything except the easing, which Setup resolves first.
func (o Options) Validate() error {
	if o.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidOptions, o.Duration)
	}
	if math.IsNaN(o.Angle) || math.IsInf(o.Angle, 0) {
		return fmt.Errorf("%w: angle must be finite", ErrInvalidOptions)
	}
	if !unit(o.InitialScale) {
		return fmt.Errorf("%w: initial scale %v must be between 0 and 1", ErrInvalidOptions, o.InitialScale)
	}
	if !unit(o.InitialOpacity) {
		return fmt.Errorf("%w: initial opacity %v must be between 0 and 1", ErrInvalidOptions, o.InitialOpacity)
	}
	if _, err := layout.ParseLength(o.X); err != nil {
		return fmt.Errorf("%w: x: %v", ErrInvalidOptions, err)
	}
	if _, err := layout.ParseLength(o.Y); err != nil {
		return fmt.Errorf("%w: y: %v", ErrInvalidOptions, err)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
