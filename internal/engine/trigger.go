package engine

import (
	"time"

	"github.com/inamate/flyinout/internal/easing"
	"github.com/inamate/flyinout/internal/motion"
)

// Target is the style-mutation side of a visual element.
type Target interface {
	SetTransform(transform string)
	SetOpacity(opacity float64)
}

// Flusher is implemented by targets that batch writes. Flush is called once
// per frame after the transform and opacity have been written.
type Flusher interface {
	Flush()
}

// Trigger starts one playback on target and returns immediately. onDone, if
// not nil, is called exactly once with no arguments after the last frame has
// been written.
type Trigger func(target Target, onDone func())

// Direction selects which way a trigger plays the curve.
type Direction int

const (
	// Forward plays progress from 0 to 1 (enter).
	Forward Direction = iota
	// Reverse plays progress from 1 to 0 (leave).
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// RawProgress returns the linear, time-based progress of a playback that has
// been running for elapsed: clamped to 1 going forward and to 0 in reverse.
func RawProgress(elapsed, duration time.Duration, dir Direction) float64 {
	// A ticker timestamp can predate the call that armed the playback.
	elapsed = max(elapsed, 0)
	ratio := float64(elapsed) / float64(duration)
	if dir == Forward {
		return min(ratio, 1)
	}
	return max(1-ratio, 0)
}

// Finished reports whether raw progress has reached the end for dir.
func (d Direction) Finished(rawProgress float64) bool {
	if d == Forward {
		return rawProgress >= 1
	}
	return rawProgress <= 0
}

// NewTrigger builds a trigger that plays frames over duration, eased by spec.
// Every invocation gets its own playback record; nothing is shared between
// invocations except the immutable curve and easing.
func NewTrigger(sched Scheduler, duration time.Duration, frames motion.FrameFunc, spec easing.Spec, dir Direction) Trigger {
	ease := spec.Func()
	return func(target Target, onDone func()) {
		sched.Schedule(&playback{
			start:    sched.Now(),
			duration: duration,
			dir:      dir,
			frames:   frames,
			ease:     ease,
			target:   target,
			onDone:   onDone,
		})
	}
}

// playback is the state of one trigger invocation.
type playback struct {
	start    time.Time
	duration time.Duration
	dir      Direction
	frames   motion.FrameFunc
	ease     easing.Func
	target   Target
	onDone   func()
}

func (p *playback) Step(now time.Time) bool {
	raw := RawProgress(now.Sub(p.start), p.duration, p.dir)
	frame := p.frames(p.ease(raw))

	p.target.SetTransform(frame.Transform())
	p.target.SetOpacity(frame.Opacity)
	if f, ok := p.target.(Flusher); ok {
		f.Flush()
	}

	if !p.dir.Finished(raw) {
		return true
	}
	if p.onDone != nil {
		p.onDone()
	}
	return false
}
