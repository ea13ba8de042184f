package engine

import (
	"sync"
	"time"
)

// ManualScheduler is a deterministic Scheduler whose clock only moves when
// Advance is called. Used for offline sampling and tests.
type ManualScheduler struct {
	queue     FrameQueue
	scheduled chan struct{}

	mu  sync.RWMutex
	now time.Time
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start, scheduled: make(chan struct{}, 1)}
}

// Now returns the current mocked time.
func (s *ManualScheduler) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// Schedule queues a task for the next Advance.
func (s *ManualScheduler) Schedule(task Task) {
	s.queue.Push(task)
	select {
	case s.scheduled <- struct{}{}:
	default:
	}
}

// Scheduled receives a value after Schedule has been called. Several calls
// between two receives collapse into one.
func (s *ManualScheduler) Scheduled() <-chan struct{} {
	return s.scheduled
}

// Pending returns the number of queued tasks.
func (s *ManualScheduler) Pending() int {
	return s.queue.Len()
}

// Advance moves the clock forward by d and runs one frame at the new time.
// It returns the number of tasks still pending.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	s.mu.Unlock()

	return s.queue.RunFrame(now)
}

// RunUntilIdle advances by step until no task is pending or maxFrames frames
// have run. It returns the number of frames run.
func (s *ManualScheduler) RunUntilIdle(step time.Duration, maxFrames int) int {
	frames := 0
	for s.queue.Len() > 0 && frames < maxFrames {
		s.Advance(step)
		frames++
	}
	return frames
}
