package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/engine"
	"github.com/inamate/flyinout/internal/transition"
	"github.com/inamate/flyinout/internal/typeid"
)

// ErrNotReady is reported when a trigger is requested before setup.
var ErrNotReady = errors.New("no transition set up")

type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]*Session // sessionID -> session
	register   chan *Session
	unregister chan *Session
	done       chan struct{}

	sched    engine.Scheduler
	catalog  *document.Catalog
	viewport document.ViewportDoc
}

// NewHub creates a hub whose playbacks all run on sched. viewport supplies
// defaults for setups that leave fields out.
func NewHub(sched engine.Scheduler, catalog *document.Catalog, viewport document.ViewportDoc) *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		sched:      sched,
		catalog:    catalog,
		viewport:   viewport,
	}
}

// Run serves registrations until ctx is done, then closes every session.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case session := <-h.register:
			h.addSession(session)
		case session := <-h.unregister:
			h.removeSession(session)
		case <-ctx.Done():
			h.closeAll()
			return nil
		}
	}
}

// Register adds a session. It reports false if the hub has stopped.
func (h *Hub) Register(session *Session) bool {
	select {
	case h.register <- session:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(session *Session) {
	select {
	case h.unregister <- session:
	case <-h.done:
	}
}

// Sessions returns the number of connected sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) addSession(session *Session) {
	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()

	session.SendPayload(TypeWelcome, WelcomePayload{SessionID: session.ID})

	slog.Info("session opened", "session", session.ID)
}

func (h *Hub) removeSession(session *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[session.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, session.ID)
	h.mu.Unlock()

	session.close()

	slog.Info("session closed", "session", session.ID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
		s.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	slog.Info("stream hub stopped", "sessions", len(sessions))
}

func (h *Hub) handleMessage(ctx context.Context, sender *Session, msg *Message) {
	switch msg.Type {
	case TypeSetup:
		h.handleSetup(ctx, sender, msg)
	case TypeEnter:
		h.handleTrigger(sender, msg, engine.Forward)
	case TypeLeave:
		h.handleTrigger(sender, msg, engine.Reverse)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "session", sender.ID)
		sender.SendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (h *Hub) handleSetup(ctx context.Context, sender *Session, msg *Message) {
	var payload SetupPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			sender.SendError("invalid setup payload: " + err.Error())
			return
		}
	}

	doc, err := h.catalog.Resolve(payload.Preset, payload.Options)
	if err != nil {
		sender.SendError(err.Error())
		return
	}

	vp := payload.Viewport.WithDefaults(h.viewport).NewViewport()
	triggers, err := transition.Setup(ctx, vp, h.sched, doc.ToOptions())
	if err != nil {
		slog.Debug("setup failed", "error", err, "session", sender.ID)
		sender.SendError(err.Error())
		return
	}
	sender.setTriggers(triggers)

	sender.SendPayload(TypeReady, ReadyPayload{
		Displacement: triggers.Displacement,
		Easing:       triggers.Easing.Slice(),
		Options:      doc,
	})
}

func (h *Hub) handleTrigger(sender *Session, msg *Message, dir engine.Direction) {
	triggers := sender.Triggers()
	if triggers == nil {
		sender.SendError(ErrNotReady.Error())
		return
	}

	var payload TriggerPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			sender.SendError("invalid trigger payload: " + err.Error())
			return
		}
	}

	trigger := triggers.Enter
	if dir == engine.Reverse {
		trigger = triggers.Leave
	}

	target := &remoteTarget{session: sender, playbackID: typeid.NewPlaybackID()}
	sender.playbacks.Start(target)
	sender.SendPayload(TypePlaying, PlayingPayload{
		PlaybackID: target.playbackID,
		Direction:  dir.String(),
		Ref:        payload.Ref,
	})

	trigger(target, func() {
		sender.playbacks.Finish(target.playbackID)
		if !target.detached.Load() {
			sender.SendPayload(TypeDone, DonePayload{PlaybackID: target.playbackID})
		}
	})
}
