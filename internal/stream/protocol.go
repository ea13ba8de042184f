package stream

import (
	"encoding/json"

	"github.com/inamate/flyinout/internal/document"
	"github.com/inamate/flyinout/internal/geometry"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client -> server
	TypeSetup = "setup"
	TypeEnter = "enter"
	TypeLeave = "leave"

	// Server -> client
	TypeWelcome = "welcome"
	TypeReady   = "ready"
	TypePlaying = "playing"
	TypeFrame   = "frame"
	TypeDone    = "done"
	TypeError   = "error"
)

// SetupPayload is the payload for setup messages. Options override the
// preset's fields when both are given.
type SetupPayload struct {
	Preset   string               `json:"preset,omitempty"`
	Options  *document.OptionsDoc `json:"options,omitempty"`
	Viewport document.ViewportDoc `json:"viewport"`
}

// TriggerPayload is the optional payload for enter and leave messages. Ref is
// echoed in the playing message so clients can match playbacks to requests.
type TriggerPayload struct {
	Ref string `json:"ref,omitempty"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
}

type ReadyPayload struct {
	Displacement geometry.Vec2       `json:"displacement"`
	Easing       []float64           `json:"easing"`
	Options      document.OptionsDoc `json:"options"`
}

type PlayingPayload struct {
	PlaybackID string `json:"playbackId"`
	Direction  string `json:"direction"`
	Ref        string `json:"ref,omitempty"`
}

type FramePayload struct {
	PlaybackID string    `json:"playbackId"`
	Transform  string    `json:"transform"`
	Opacity    float64   `json:"opacity"`
	Matrix     []float64 `json:"matrix"`
}

type DonePayload struct {
	PlaybackID string `json:"playbackId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(msgType string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Payload: data}, nil
}
