package document

import (
	"time"

	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/layout"
	"github.com/inamate/flyinout/internal/transition"
)

// OptionsDoc is the wire form of transition options. Every field is
// optional; missing fields take the defaults from transition.DefaultOptions.
type OptionsDoc struct {
	X              *string       `json:"x,omitempty" yaml:"x,omitempty"`
	Y              *string       `json:"y,omitempty" yaml:"y,omitempty"`
	Angle          *float64      `json:"angle,omitempty" yaml:"angle,omitempty"`
	Duration       *float64      `json:"duration,omitempty" yaml:"duration,omitempty"` // milliseconds
	InitialScale   *float64      `json:"initialScale,omitempty" yaml:"initialScale,omitempty"`
	InitialOpacity *float64      `json:"initialOpacity,omitempty" yaml:"initialOpacity,omitempty"`
	CubicBezier    *easing.Value `json:"cubicBezier,omitempty" yaml:"cubicBezier,omitempty"`
}

// ToOptions fills the gaps with defaults. The result is not validated.
func (d OptionsDoc) ToOptions() transition.Options {
	opts := transition.DefaultOptions()
	if d.X != nil {
		opts.X = *d.X
	}
	if d.Y != nil {
		opts.Y = *d.Y
	}
	if d.Angle != nil {
		opts.Angle = *d.Angle
	}
	if d.Duration != nil {
		opts.Duration = time.Duration(*d.Duration * float64(time.Millisecond))
	}
	if d.InitialScale != nil {
		opts.InitialScale = *d.InitialScale
	}
	if d.InitialOpacity != nil {
		opts.InitialOpacity = *d.InitialOpacity
	}
	if d.CubicBezier != nil {
		opts.Easing = *d.CubicBezier
	}
	return opts
}

// Override returns d with every field that is set in o replaced.
func (d OptionsDoc) Override(o OptionsDoc) OptionsDoc {
	if o.X != nil {
		d.X = o.X
	}
	if o.Y != nil {
		d.Y = o.Y
	}
	if o.Angle != nil {
		d.Angle = o.Angle
	}
	if o.Duration != nil {
		d.Duration = o.Duration
	}
	if o.InitialScale != nil {
		d.InitialScale = o.InitialScale
	}
	if o.InitialOpacity != nil {
		d.InitialOpacity = o.InitialOpacity
	}
	if o.CubicBezier != nil {
		d.CubicBezier = o.CubicBezier
	}
	return d
}

// FromOptions returns a fully populated document for opts.
func FromOptions(opts transition.Options) OptionsDoc {
	duration := float64(opts.Duration) / float64(time.Millisecond)
	return OptionsDoc{
		X:              &opts.X,
		Y:              &opts.Y,
		Angle:          &opts.Angle,
		Duration:       &duration,
		InitialScale:   &opts.InitialScale,
		InitialOpacity: &opts.InitialOpacity,
		CubicBezier:    &opts.Easing,
	}
}

// ViewportDoc describes the headless viewport a curve is measured in. Zero
// fields take the server defaults.
type ViewportDoc struct {
	Width    float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" yaml:"height,omitempty"`
	FontSize float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
}

// WithDefaults replaces non-positive fields with the ones from def.
func (v ViewportDoc) WithDefaults(def ViewportDoc) ViewportDoc {
	if v.Width <= 0 {
		v.Width = def.Width
	}
	if v.Height <= 0 {
		v.Height = def.Height
	}
	if v.FontSize <= 0 {
		v.FontSize = def.FontSize
	}
	return v
}

// NewViewport builds a headless viewport of this size.
func (v ViewportDoc) NewViewport() *layout.Viewport {
	return layout.NewViewport(v.Width, v.Height, v.FontSize)
}
