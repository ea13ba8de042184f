package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/flyinout/internal/transition"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// Session is one websocket connection and the transition it has set up.
type Session struct {
	hub  *Hub
	conn *websocket.Conn
	ID   string

	// ctx is cancelled by close, releasing a read or setup in progress.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	send   chan []byte
	closed bool

	stateMu  sync.RWMutex
	triggers *transition.Triggers

	playbacks *PlaybackTracker
}

func NewSession(ctx context.Context, hub *Hub, conn *websocket.Conn, id string) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		hub:       hub,
		conn:      conn,
		ID:        id,
		ctx:       ctx,
		cancel:    cancel,
		send:      make(chan []byte, sendBuffer),
		playbacks: NewPlaybackTracker(),
	}
}

func (s *Session) ReadPump() {
	ctx := s.ctx
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", s.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", s.ID)
			s.SendError("invalid message")
			continue
		}
		msg.SessionID = s.ID

		s.hub.handleMessage(ctx, s, &msg)
	}
}

func (s *Session) WritePump() {
	ctx := s.ctx
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", s.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg for the write pump. Messages are dropped when the buffer
// is full or the session has been closed.
func (s *Session) Send(msg *Message) {
	msg.SessionID = s.ID
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- data:
	default:
		slog.Warn("session send buffer full, dropping message", "session", s.ID, "type", msg.Type)
	}
}

func (s *Session) SendPayload(msgType string, payload any) {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", msgType)
		return
	}
	s.Send(msg)
}

func (s *Session) SendError(message string) {
	s.SendPayload(TypeError, ErrorPayload{Message: message})
}

// Triggers returns the current transition, or nil before the first setup.
func (s *Session) Triggers() *transition.Triggers {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.triggers
}

func (s *Session) setTriggers(t *transition.Triggers) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.triggers = t
}

// close stops both pumps, abandons a setup in progress and silences running
// playbacks. Safe to call more than once.
func (s *Session) close() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
	if n := s.playbacks.DetachAll(); n > 0 {
		slog.Debug("detached playbacks", "session", s.ID, "count", n)
	}
}
