package engine

import (
	"context"
	"sync"
	"time"
)

// Task is a unit of per-frame work. Step is called once per frame with the
// frame timestamp and reports whether the task wants another frame.
type Task interface {
	Step(now time.Time) bool
}

// TaskFunc adapts a function to the Task interface.
type TaskFunc func(now time.Time) bool

// Step calls f(now).
func (f TaskFunc) Step(now time.Time) bool { return f(now) }

// Scheduler delivers frames to tasks. A scheduled task first runs on the
// frame after the call to Schedule, never synchronously.
type Scheduler interface {
	Now() time.Time
	Schedule(task Task)
}

// FrameQueue holds the tasks waiting for the next frame. It is the loop body
// shared by every Scheduler implementation; it does not own a clock.
type FrameQueue struct {
	mu      sync.Mutex
	pending []Task
}

// Push queues a task for the next frame.
func (q *FrameQueue) Push(task Task) {
	q.mu.Lock()
	q.pending = append(q.pending, task)
	q.mu.Unlock()
}

// Len returns the number of queued tasks.
func (q *FrameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunFrame steps every queued task once. Tasks that want another frame are
// queued again ahead of any task pushed while the frame was running. It
// returns the number of tasks queued for the next frame.
func (q *FrameQueue) RunFrame(now time.Time) int {
	q.mu.Lock()
	tasks := q.pending
	q.pending = nil
	q.mu.Unlock()

	keep := tasks[:0]
	for _, task := range tasks {
		if task.Step(now) {
			keep = append(keep, task)
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(keep, q.pending...)
	return len(q.pending)
}

// NextFrame blocks until sched runs its next frame and returns that frame's
// timestamp, or returns ctx.Err() if ctx is done first.
func NextFrame(ctx context.Context, sched Scheduler) (time.Time, error) {
	frame := make(chan time.Time, 1)
	sched.Schedule(TaskFunc(func(now time.Time) bool {
		frame <- now
		return false
	}))

	select {
	case now := <-frame:
		return now, nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}
