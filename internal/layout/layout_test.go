package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/inamate/flyinout/internal/geometry"
)

func TestParseLength(t *testing.T) {
	ctx := ResolveContext{
		ViewportWidth:  1000,
		ViewportHeight: 500,
		FontSize:       20,
		RootFontSize:   16,
		PercentBasis:   200,
	}

	tests := []struct {
		in   string
		want float64
	}{
		{"150px", 150},
		{"-150px", -150},
		{" 2.5PX ", 2.5},
		{"0", 0},
		{"-0", 0},
		{"50%", 100},
		{"2em", 40},
		{"2rem", 32},
		{"10vw", 100},
		{"10vh", 50},
		{"10vmin", 50},
		{"10vmax", 100},
		{"72pt", 96},
		{"1pc", 16},
		{"1in", 96},
		{"2.54cm", 96},
		{"25.4mm", 96},
		{".5px", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := ParseLength(tt.in)
			if err != nil {
				t.Fatalf("ParseLength(%q): %v", tt.in, err)
			}
			if got := l.Resolve(ctx); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLengthInvalid(t *testing.T) {
	for _, in := range []string{"", "px", "12", "12furlongs", "1.2.3px", "abc"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseLength(in); !errors.Is(err, ErrBadLength) {
				t.Errorf("ParseLength(%q) error = %v, want ErrBadLength", in, err)
			}
		})
	}
}

func TestLengthString(t *testing.T) {
	l, _ := ParseLength("-12.5em")
	if l.String() != "-12.5em" {
		t.Errorf("String() = %q", l.String())
	}
}

func TestViewportProbe(t *testing.T) {
	vp := NewViewport(800, 600, 16)

	probe := vp.NewProbe()
	if vp.ActiveProbes() != 1 {
		t.Fatalf("expected 1 active probe, got %d", vp.ActiveProbes())
	}

	rest := probe.Position()
	if rest != (geometry.Vec2{X: 400, Y: 300}) {
		t.Errorf("rest position = %+v", rest)
	}

	if err := probe.SetOffset("150px", "-10vh"); err != nil {
		t.Fatalf("SetOffset: %v", err)
	}
	if got := probe.Position().Sub(rest); got != (geometry.Vec2{X: 150, Y: -60}) {
		t.Errorf("displacement = %+v", got)
	}

	// Percentages resolve against the probe's own zero-size box.
	if err := probe.SetOffset("50%", "2em"); err != nil {
		t.Fatalf("SetOffset: %v", err)
	}
	if got := probe.Position().Sub(rest); got != (geometry.Vec2{X: 0, Y: 32}) {
		t.Errorf("displacement = %+v", got)
	}

	if err := probe.SetOffset("1furlong", "0"); !errors.Is(err, ErrBadLength) {
		t.Errorf("expected ErrBadLength, got %v", err)
	}

	probe.Remove()
	if vp.ActiveProbes() != 0 {
		t.Errorf("expected no active probes, got %d", vp.ActiveProbes())
	}
}

func TestElement(t *testing.T) {
	el := NewElement()

	frame, err := el.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if frame.Scale != 1 || frame.Opacity != 1 || frame.X != 0 {
		t.Errorf("fresh element frame = %+v", frame)
	}

	el.SetTransform("translate(12.5px, -3px) scale(0.4)")
	el.SetOpacity(0.25)

	frame, err = el.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if frame.X != 12.5 || frame.Y != -3 || frame.Scale != 0.4 || frame.Opacity != 0.25 {
		t.Errorf("frame = %+v", frame)
	}

	history := el.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].Opacity != 1 || history[1].Opacity != 0.25 {
		t.Errorf("history = %+v", history)
	}

	el.Detach()
	el.SetTransform("translate(0px, 0px) scale(1)")
	el.SetOpacity(1)
	if el.Opacity() != 0.25 || len(el.History()) != 2 {
		t.Error("detached element accepted writes")
	}
}
