package preview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/geometry"
	"github.com/inamate/flyinout/internal/layout"
	"github.com/inamate/flyinout/internal/transition"
	"github.com/inamate/flyinout/internal/typeid"
)

// ErrTooManyFrames is returned when a run would exceed the frame limit.
var ErrTooManyFrames = errors.New("too many frames")

const (
	defaultFPS = 60
	maxFPS     = 1000
)

// Sample is one frame written to a target.
type Sample struct {
	T           float64   `json:"t"` // milliseconds since the trigger fired
	RawProgress float64   `json:"rawProgress"`
	Transform   string    `json:"transform"`
	Opacity     float64   `json:"opacity"`
	Matrix      []float64 `json:"matrix"`
}

// Run is a sampled setup: the measured curve and the frames each requested
// direction produced.
type Run struct {
	ID           string        `json:"id"`
	Displacement geometry.Vec2 `json:"displacement"`
	Easing       []float64     `json:"easing"`
	FPS          int           `json:"fps"`
	Enter        []Sample      `json:"enter,omitempty"`
	Leave        []Sample      `json:"leave,omitempty"`

	viewport *layout.Viewport
	triggers *transition.Triggers
}

// Sampler plays transitions on a mock clock.
type Sampler struct {
	MaxFrames int
}

// SetupOffline runs transition.Setup against a manual scheduler, supplying
// the frame it waits for.
func SetupOffline(ctx context.Context, vp *layout.Viewport, sched *engine.ManualScheduler, step time.Duration, opts transition.Options) (*transition.Triggers, error) {
	var triggers *transition.Triggers
	ready := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ready)
		tr, err := transition.Setup(gctx, vp, sched, opts)
		if err != nil {
			return err
		}
		triggers = tr
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ready:
				return nil
			case <-sched.Scheduled():
				sched.Advance(step)
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return triggers, nil
}

// Sample sets opts up on vp and records every frame of the requested
// directions, stepping the clock at fps.
func (s *Sampler) Sample(ctx context.Context, vp *layout.Viewport, opts transition.Options, fps int, dir Direction) (*Run, error) {
	if fps <= 0 {
		fps = defaultFPS
	}
	if fps > maxFPS {
		return nil, fmt.Errorf("%w: fps %d exceeds %d", transition.ErrInvalidOptions, fps, maxFPS)
	}
	step := time.Second / time.Duration(fps)

	if opts.Duration > 0 && s.MaxFrames > 0 {
		if frames := int((opts.Duration + step - 1) / step); frames > s.MaxFrames {
			return nil, fmt.Errorf("%w: %d frames at %d fps exceeds %d", ErrTooManyFrames, frames, fps, s.MaxFrames)
		}
	}

	sched := engine.NewManualScheduler(time.Unix(0, 0).UTC())
	triggers, err := SetupOffline(ctx, vp, sched, step, opts)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:           typeid.NewPreviewID(),
		Displacement: triggers.Displacement,
		Easing:       triggers.Easing.Slice(),
		FPS:          fps,
		viewport:     vp,
		triggers:     triggers,
	}

	if dir.Enter() {
		if run.Enter, err = s.play(sched, step, triggers.Enter, opts.Duration, engine.Forward); err != nil {
			return nil, err
		}
	}
	if dir.Leave() {
		if run.Leave, err = s.play(sched, step, triggers.Leave, opts.Duration, engine.Reverse); err != nil {
			return nil, err
		}
	}
	return run, nil
}

func (s *Sampler) play(sched *engine.ManualScheduler, step time.Duration, trigger engine.Trigger, duration time.Duration, dir engine.Direction) ([]Sample, error) {
	el := layout.NewElement()
	done := false
	start := sched.Now()
	trigger(el, func() { done = true })

	var samples []Sample
	for !done && (s.MaxFrames <= 0 || len(samples) < s.MaxFrames) {
		sched.Advance(step)
		elapsed := sched.Now().Sub(start)

		frame, err := el.Frame()
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{
			T:           float64(elapsed) / float64(time.Millisecond),
			RawProgress: engine.RawProgress(elapsed, duration, dir),
			Transform:   el.Transform(),
			Opacity:     frame.Opacity,
			Matrix:      engine.FrameMatrix(frame).ToSlice(),
		})
	}
	return samples, nil
}

// Direction selects which triggers a sample run plays.
type Direction string

const (
	DirectionBoth  Direction = "both"
	DirectionEnter Direction = "enter"
	DirectionLeave Direction = "leave"
)

// ParseDirection accepts "enter", "leave", "both" or "" (both).
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case "":
		return DirectionBoth, nil
	case DirectionBoth, DirectionEnter, DirectionLeave:
		return d, nil
	}
	return "", fmt.Errorf("%w: direction %q", transition.ErrInvalidOptions, s)
}

func (d Direction) Enter() bool { return d != DirectionLeave }
func (d Direction) Leave() bool { return d != DirectionEnter }
