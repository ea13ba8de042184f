// Package transition measures where a target should fly in from and builds
// the enter and leave triggers for it.
package transition

import (
	"context"
	"fmt"

	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/geometry"
	"github.com/inamate/flyinout/internal/layout"
	"github.com/inamate/flyinout/internal/motion"
)

// Probe is the position-probe capability of the host surface.
type Probe = layout.Probe

// Surface creates probes at the rest position of the animated target.
type Surface interface {
	NewProbe() Probe
}

// Triggers is the result of Setup. Enter and Leave may be called any number
// of times, on any targets.
type Triggers struct {
	Enter        engine.Trigger
	Leave        engine.Trigger
	Displacement geometry.Vec2
	Easing       easing.Spec
	Frames       motion.FrameFunc
}

// Setup resolves the easing, measures the offset on surface and returns the
// enter/leave triggers. It blocks for exactly one frame of sched.
func Setup(ctx context.Context, surface Surface, sched engine.Scheduler, opts Options) (*Triggers, error) {
	spec, err := easing.Resolve(opts.Easing)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	displacement, err := Measure(ctx, surface, sched, opts.X, opts.Y)
	if err != nil {
		return nil, err
	}

	curve := geometry.BuildCurve(displacement, opts.Angle)
	frames := motion.Compose(curve, opts.InitialScale, opts.InitialOpacity)

	return &Triggers{
		Enter:        engine.NewTrigger(sched, opts.Duration, frames, spec, engine.Forward),
		Leave:        engine.NewTrigger(sched, opts.Duration, frames, spec, engine.Reverse),
		Displacement: displacement,
		Easing:       spec,
		Frames:       frames,
	}, nil
}

// Measure returns how far offsetting a probe by (x, y) moves it, read one
// frame after the offset is applied. The probe is always removed.
func Measure(ctx context.Context, surface Surface, sched engine.Scheduler, x, y string) (geometry.Vec2, error) {
	probe := surface.NewProbe()
	defer probe.Remove()

	rest := probe.Position()
	if err := probe.SetOffset(x, y); err != nil {
		return geometry.Vec2{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	if _, err := engine.NextFrame(ctx, sched); err != nil {
		return geometry.Vec2{}, fmt.Errorf("waiting for layout: %w", err)
	}

	return probe.Position().Sub(rest), nil
}
