package engine

import (
	"context"
	"log/slog"
	"time"
)

// FrameLoop is a real-time Scheduler that runs one frame per ticker tick.
type FrameLoop struct {
	queue    FrameQueue
	interval time.Duration
	onFrame  func(now time.Time, pending int)
}

// NewFrameLoop creates a loop ticking fps times per second. fps <= 0 falls
// back to 60.
func NewFrameLoop(fps int) *FrameLoop {
	if fps <= 0 {
		fps = 60
	}
	return &FrameLoop{interval: time.Second / time.Duration(fps)}
}

// OnFrame registers a hook called after every frame with the number of tasks
// still pending. Must be set before Run.
func (l *FrameLoop) OnFrame(fn func(now time.Time, pending int)) {
	l.onFrame = fn
}

// Interval returns the time between frames.
func (l *FrameLoop) Interval() time.Duration {
	return l.interval
}

// Now returns the wall clock.
func (l *FrameLoop) Now() time.Time {
	return time.Now()
}

// Schedule queues a task for the next tick.
func (l *FrameLoop) Schedule(task Task) {
	l.queue.Push(task)
}

// Pending returns the number of queued tasks.
func (l *FrameLoop) Pending() int {
	return l.queue.Len()
}

// Run drives frames until ctx is done. Tasks still queued at that point are
// dropped without another step.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Debug("frame loop started", "interval", l.interval)

	for {
		select {
		case now := <-ticker.C:
			pending := l.queue.RunFrame(now)
			if l.onFrame != nil {
				l.onFrame(now, pending)
			}
		case <-ctx.Done():
			slog.Debug("frame loop stopped", "pending", l.queue.Len())
			return nil
		}
	}
}
