package layout

import (
	"sync"

	"github.com/inamate/flyinout/internal/motion"
)

// Style is a snapshot of an element's animated properties.
type Style struct {
	Transform string  `json:"transform"`
	Opacity   float64 `json:"opacity"`
}

// Element is a headless animation target. It keeps its current style and a
// snapshot after every write.
type Element struct {
	mu       sync.Mutex
	style    Style
	history  []Style
	detached bool
}

// NewElement creates an element with no transform and full opacity.
func NewElement() *Element {
	return &Element{style: Style{Opacity: 1}}
}

// SetTransform implements engine.Target.
func (e *Element) SetTransform(transform string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return
	}
	e.style.Transform = transform
	e.history = append(e.history, e.style)
}

// SetOpacity implements engine.Target.
func (e *Element) SetOpacity(opacity float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return
	}
	e.style.Opacity = opacity
	e.history = append(e.history, e.style)
}

// Style returns the current style.
func (e *Element) Style() Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style
}

// Transform returns the current transform string.
func (e *Element) Transform() string {
	return e.Style().Transform
}

// Opacity returns the current opacity.
func (e *Element) Opacity() float64 {
	return e.Style().Opacity
}

// Frame decodes the current style. An element that was never transformed is
// at rest.
func (e *Element) Frame() (motion.Frame, error) {
	style := e.Style()
	frame := motion.Frame{Scale: 1}
	if style.Transform != "" {
		var err error
		frame, err = motion.ParseTransform(style.Transform)
		if err != nil {
			return motion.Frame{}, err
		}
	}
	frame.Opacity = style.Opacity
	return frame, nil
}

// History returns a copy of every style the element has had, one entry per
// write.
func (e *Element) History() []Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Style, len(e.history))
	copy(out, e.history)
	return out
}

// Detach makes further writes no-ops.
func (e *Element) Detach() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detached = true
}
