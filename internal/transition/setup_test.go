package transition

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/geometry"
	"github.com/inamate/flyinout/internal/layout"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// setupNow runs Setup and feeds it the single frame it waits for.
func setupNow(t *testing.T, surface Surface, sched *engine.ManualScheduler, opts Options) (*Triggers, error) {
	t.Helper()

	type result struct {
		triggers *Triggers
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		tr, err := Setup(context.Background(), surface, sched, opts)
		ch <- result{tr, err}
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case r := <-ch:
			return r.triggers, r.err
		case <-deadline:
			t.Fatal("Setup did not return")
			return nil, nil
		case <-time.After(time.Millisecond):
			if sched.Pending() > 0 {
				sched.Advance(16 * time.Millisecond)
			}
		}
	}
}

func TestDefaultOptionsAreValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	if opts.Duration != 400*time.Millisecond || opts.Angle != 90 || opts.Easing.Name != easing.EaseInOut {
		t.Errorf("unexpected defaults %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero duration", func(o *Options) { o.Duration = 0 }},
		{"negative duration", func(o *Options) { o.Duration = -time.Second }},
		{"scale above one", func(o *Options) { o.InitialScale = 1.5 }},
		{"negative opacity", func(o *Options) { o.InitialOpacity = -0.1 }},
		{"nan angle", func(o *Options) { o.Angle = math.NaN() }},
		{"bad x", func(o *Options) { o.X = "12furlongs" }},
		{"unitless y", func(o *Options) { o.Y = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestSetupStraightPathEndToEnd(t *testing.T) {
	vp := layout.NewViewport(800, 600, 16)
	sched := engine.NewManualScheduler(epoch)

	opts := DefaultOptions()
	opts.Angle = 0
	opts.Duration = 100 * time.Millisecond
	opts.InitialScale = 1
	opts.InitialOpacity = 1
	opts.Easing = easing.Named(easing.Linear)

	triggers, err := setupNow(t, vp, sched, opts)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if vp.ActiveProbes() != 0 {
		t.Errorf("probe not removed")
	}
	if triggers.Displacement != (geometry.Vec2{X: 150, Y: 150}) {
		t.Errorf("displacement = %+v", triggers.Displacement)
	}

	el := layout.NewElement()
	done := 0
	triggers.Enter(el, func() { done++ })

	sched.Advance(50 * time.Millisecond)
	if got := el.Transform(); got != "translate(37.5px, 37.5px) scale(1)" {
		t.Errorf("mid-way transform = %q", got)
	}

	sched.RunUntilIdle(10*time.Millisecond, 100)
	if done != 1 {
		t.Fatalf("onDone called %d times, want 1", done)
	}
	if got := el.Transform(); got != "translate(0px, 0px) scale(1)" {
		t.Errorf("final transform = %q", got)
	}
	if el.Opacity() != 1 {
		t.Errorf("final opacity = %v", el.Opacity())
	}
}

func TestSetupDefaultsArc(t *testing.T) {
	vp := layout.NewViewport(1280, 720, 16)
	sched := engine.NewManualScheduler(epoch)

	triggers, err := setupNow(t, vp, sched, DefaultOptions())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if triggers.Easing != (easing.Spec{0.42, 0, 0.58, 1}) {
		t.Errorf("easing = %v", triggers.Easing)
	}

	el := layout.NewElement()
	done := 0
	triggers.Leave(el, func() { done++ })
	sched.RunUntilIdle(16*time.Millisecond, 100)

	if done != 1 {
		t.Fatalf("onDone called %d times, want 1", done)
	}
	// Leaving ends at the offset position, shrunk and faded.
	if got := el.Transform(); got != "translate(150px, 150px) scale(0.3)" {
		t.Errorf("final transform = %q", got)
	}
	if el.Opacity() != 0.1 {
		t.Errorf("final opacity = %v", el.Opacity())
	}

	// A 90° sweep from (150, 150) pivots around the anchor (150, 0).
	mid := triggers.Frames(0.5).Position()
	if r := mid.Sub(geometry.Vec2{X: 150}).Len(); math.Abs(r-150) > 1e-9 {
		t.Errorf("arc midpoint %+v is %v from the anchor, want 150", mid, r)
	}
	if mid.X >= 75 || mid.Y <= 75 {
		t.Errorf("arc midpoint %+v lies on the chord", mid)
	}
}

func TestSetupTriggersAreReusable(t *testing.T) {
	vp := layout.NewViewport(800, 600, 16)
	sched := engine.NewManualScheduler(epoch)

	triggers, err := setupNow(t, vp, sched, DefaultOptions())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	a, b := layout.NewElement(), layout.NewElement()
	var doneA, doneB int
	triggers.Enter(a, func() { doneA++ })
	triggers.Enter(b, func() { doneB++ })
	sched.RunUntilIdle(16*time.Millisecond, 100)

	triggers.Leave(a, func() { doneA++ })
	sched.RunUntilIdle(16*time.Millisecond, 100)

	if doneA != 2 || doneB != 1 {
		t.Errorf("doneA=%d doneB=%d", doneA, doneB)
	}
	if a.Opacity() != 0.1 || b.Opacity() != 1 {
		t.Errorf("opacities a=%v b=%v", a.Opacity(), b.Opacity())
	}
}

func TestSetupInvalidEasingLeavesNoProbe(t *testing.T) {
	vp := layout.NewViewport(800, 600, 16)
	sched := engine.NewManualScheduler(epoch)

	for _, value := range []easing.Value{
		easing.Named("bouncy"),
		easing.Points(0.1, 0.2, 0.3),
		easing.Points(0.1, 1.2, 0.3, 0.4),
		{},
	} {
		opts := DefaultOptions()
		opts.Easing = value
		_, err := Setup(context.Background(), vp, sched, opts)
		if !errors.Is(err, easing.ErrInvalidEasing) {
			t.Errorf("%v: expected ErrInvalidEasing, got %v", value, err)
		}
	}

	if vp.ActiveProbes() != 0 || sched.Pending() != 0 {
		t.Errorf("probes=%d pending=%d", vp.ActiveProbes(), sched.Pending())
	}
}

func TestSetupInvalidOptions(t *testing.T) {
	vp := layout.NewViewport(800, 600, 16)
	sched := engine.NewManualScheduler(epoch)

	opts := DefaultOptions()
	opts.Duration = 0
	if _, err := Setup(context.Background(), vp, sched, opts); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
	if vp.ActiveProbes() != 0 {
		t.Error("probe created for invalid options")
	}
}

func TestSetupCancelledRemovesProbe(t *testing.T) {
	vp := layout.NewViewport(800, 600, 16)
	sched := engine.NewManualScheduler(epoch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Setup(ctx, vp, sched, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if vp.ActiveProbes() != 0 {
		t.Error("probe left behind after cancellation")
	}
}
