package stream

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"

	"github.com/inamate/flyinout/internal/typeid"
)

// Handler upgrades GET /ws/play to a playback session.
type Handler struct {
	hub            *Hub
	originPatterns []string
}

// NewHandler accepts websocket connections from allowedOrigins, given as
// full origins ("http://localhost:5173") or "*".
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	patterns := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			patterns = append(patterns, origin)
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			slog.Warn("ignoring allowed origin", "origin", origin)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return &Handler{hub: hub, originPatterns: patterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	// Hijacked connections outlive r.Context() cancellation on shutdown; the
	// hub cancels the session's own context instead.
	session := NewSession(r.Context(), h.hub, conn, typeid.NewSessionID())
	defer session.cancel()
	if !h.hub.Register(session) {
		conn.Close(websocket.StatusTryAgainLater, "server shutting down")
		return
	}

	go session.WritePump()
	session.ReadPump()
}
