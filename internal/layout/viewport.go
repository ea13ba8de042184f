package layout

import (
	"fmt"
	"sync"

	"github.com/inamate/flyinout/internal/geometry"
)

// Probe is a throwaway element used to measure where an offset lands on
// screen. It is created at the rest position and must be removed after use.
type Probe interface {
	// Position returns the probe's top-left corner in viewport pixels.
	Position() geometry.Vec2
	// SetOffset translates the probe by the given CSS lengths.
	SetOffset(x, y string) error
	Remove()
}

// Viewport is a headless stand-in for a browser window. Probes live at Origin
// and have a zero-size box.
type Viewport struct {
	Width        float64
	Height       float64
	FontSize     float64
	RootFontSize float64
	Origin       geometry.Vec2

	mu     sync.Mutex
	probes map[*probe]struct{}
}

// NewViewport creates a viewport with the rest position at the centre.
func NewViewport(width, height, fontSize float64) *Viewport {
	return &Viewport{
		Width:        width,
		Height:       height,
		FontSize:     fontSize,
		RootFontSize: fontSize,
		Origin:       geometry.Vec2{X: width / 2, Y: height / 2},
	}
}

// NewProbe adds a probe at the viewport's rest position.
func (v *Viewport) NewProbe() Probe {
	p := &probe{viewport: v, pos: v.Origin}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.probes == nil {
		v.probes = make(map[*probe]struct{})
	}
	v.probes[p] = struct{}{}
	return p
}

// ActiveProbes returns the number of probes not yet removed.
func (v *Viewport) ActiveProbes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.probes)
}

func (v *Viewport) context() ResolveContext {
	return ResolveContext{
		ViewportWidth:  v.Width,
		ViewportHeight: v.Height,
		FontSize:       v.FontSize,
		RootFontSize:   v.RootFontSize,
	}
}

func (v *Viewport) remove(p *probe) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.probes, p)
}

type probe struct {
	viewport *Viewport

	mu  sync.Mutex
	pos geometry.Vec2
}

func (p *probe) Position() geometry.Vec2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *probe) SetOffset(x, y string) error {
	lx, err := ParseLength(x)
	if err != nil {
		return fmt.Errorf("offset x: %w", err)
	}
	ly, err := ParseLength(y)
	if err != nil {
		return fmt.Errorf("offset y: %w", err)
	}

	// Zero-size box, so percentages resolve against nothing.
	ctx := p.viewport.context()
	offset := geometry.Vec2{X: lx.Resolve(ctx), Y: ly.Resolve(ctx)}

	p.mu.Lock()
	p.pos = p.viewport.Origin.Add(offset)
	p.mu.Unlock()
	return nil
}

func (p *probe) Remove() {
	p.viewport.remove(p)
}
