package typeid

import (
	"strings"
	"testing"
)

func TestNewIDs(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"session", NewSessionID, PrefixSession},
		{"playback", NewPlaybackID, PrefixPlayback},
		{"preview", NewPreviewID, PrefixPreview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix+"_") {
				t.Errorf("id %q lacks prefix %q", id, tt.prefix)
			}
			if err := Validate(id, tt.prefix); err != nil {
				t.Errorf("Validate(%q): %v", id, err)
			}
			if id == tt.gen() {
				t.Error("ids must be unique")
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewSessionID(), PrefixPlayback); err == nil {
		t.Error("expected prefix mismatch error")
	}
	if err := Validate("not an id", PrefixSession); err == nil {
		t.Error("expected parse error")
	}
}
