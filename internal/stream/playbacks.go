package stream

import (
	"sync"
	"sync/atomic"

	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/motion"
)

// remoteTarget forwards every frame written by a playback to its session.
type remoteTarget struct {
	session    *Session
	playbackID string

	mu        sync.Mutex
	transform string
	opacity   float64

	detached atomic.Bool
}

func (t *remoteTarget) SetTransform(transform string) {
	t.mu.Lock()
	t.transform = transform
	t.mu.Unlock()
}

func (t *remoteTarget) SetOpacity(opacity float64) {
	t.mu.Lock()
	t.opacity = opacity
	t.mu.Unlock()
}

// Flush implements engine.Flusher.
func (t *remoteTarget) Flush() {
	if t.detached.Load() {
		return
	}

	t.mu.Lock()
	payload := FramePayload{
		PlaybackID: t.playbackID,
		Transform:  t.transform,
		Opacity:    t.opacity,
	}
	t.mu.Unlock()

	// Target only sees the printed transform, so the matrix is built from the
	// same rounded values the client receives in Transform.
	if frame, err := motion.ParseTransform(payload.Transform); err == nil {
		payload.Matrix = engine.FrameMatrix(frame).ToSlice()
	}
	t.session.SendPayload(TypeFrame, payload)
}

// PlaybackTracker keeps the playbacks of one session that have not finished.
type PlaybackTracker struct {
	mu      sync.RWMutex
	targets map[string]*remoteTarget // playbackID -> target
}

func NewPlaybackTracker() *PlaybackTracker {
	return &PlaybackTracker{
		targets: make(map[string]*remoteTarget),
	}
}

func (pt *PlaybackTracker) Start(t *remoteTarget) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.targets[t.playbackID] = t
}

func (pt *PlaybackTracker) Finish(playbackID string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	delete(pt.targets, playbackID)
}

func (pt *PlaybackTracker) Active() []string {
	pt.mu.RLock()
	defer pt.mu.RUnlock()

	ids := make([]string, 0, len(pt.targets))
	for id := range pt.targets {
		ids = append(ids, id)
	}
	return ids
}

// DetachAll silences every running playback. They keep running on the
// scheduler until their time is up but no longer produce messages.
func (pt *PlaybackTracker) DetachAll() int {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	n := len(pt.targets)
	for id, t := range pt.targets {
		t.detached.Store(true)
		delete(pt.targets, id)
	}
	return n
}
