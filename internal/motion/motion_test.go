package motion

import (
	"errors"
	"testing"

	"github.com/inamate/flyinout/internal/geometry"
)

func TestComposeOpacityPinnedAtOne(t *testing.T) {
	frames := Compose(geometry.StraightPath(geometry.Vec2{X: 10, Y: 20}), 0.3, 1)
	for i := 0; i <= 10; i++ {
		p := float64(i) / 10
		if got := frames(p).Opacity; got != 1 {
			t.Errorf("opacity(%v) = %v, want 1", p, got)
		}
	}
}

func TestComposeScaleGrows(t *testing.T) {
	frames := Compose(geometry.StraightPath(geometry.Vec2{}), 0.5, 0.1)

	if got := frames(0).Scale; got != 0.5 {
		t.Errorf("scale(0) = %v, want 0.5", got)
	}
	if got := frames(1).Scale; got != 1 {
		t.Errorf("scale(1) = %v, want 1", got)
	}

	prev := frames(0).Scale
	for i := 1; i <= 20; i++ {
		s := frames(float64(i) / 20).Scale
		if s <= prev {
			t.Errorf("scale not increasing at step %d: %v <= %v", i, s, prev)
		}
		prev = s
	}
}

func TestComposeOpacityGrows(t *testing.T) {
	frames := Compose(geometry.StraightPath(geometry.Vec2{}), 1, 0.1)

	if got := frames(0).Opacity; got != 0.1 {
		t.Errorf("opacity(0) = %v, want 0.1", got)
	}
	if got := frames(0.5).Opacity; got != 0.55 {
		t.Errorf("opacity(0.5) = %v, want 0.55", got)
	}
	if got := frames(0.5).Scale; got != 1 {
		t.Errorf("scale pinned at 1 expected, got %v", got)
	}
}

func TestComposePosition(t *testing.T) {
	frames := Compose(geometry.StraightPath(geometry.Vec2{X: 10, Y: 20}), 1, 1)
	f := frames(0.5)
	if f.Position() != (geometry.Vec2{X: 2.5, Y: 5}) {
		t.Errorf("position = %v, want {2.5 5}", f.Position())
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		frame Frame
		want  string
	}{
		{Frame{X: 2.5, Y: 5, Scale: 1}, "translate(2.5px, 5px) scale(1)"},
		{Frame{X: -0.0, Y: 0, Scale: 0.3}, "translate(0px, 0px) scale(0.3)"},
		{Frame{X: 7e-15, Y: -12.3456789, Scale: 0.65}, "translate(0px, -12.345679px) scale(0.65)"},
	}

	for _, tt := range tests {
		if got := tt.frame.Transform(); got != tt.want {
			t.Errorf("Transform() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseTransform(t *testing.T) {
	original := Frame{X: -37.5, Y: 120.25, Scale: 0.65}
	got, err := ParseTransform(original.Transform())
	if err != nil {
		t.Fatalf("ParseTransform failed: %v", err)
	}
	if got != original {
		t.Errorf("ParseTransform = %+v, want %+v", got, original)
	}

	noScale, err := ParseTransform("translate(150px, 150px)")
	if err != nil {
		t.Fatalf("ParseTransform without scale failed: %v", err)
	}
	if noScale.X != 150 || noScale.Y != 150 || noScale.Scale != 1 {
		t.Errorf("unexpected frame %+v", noScale)
	}

	for _, bad := range []string{"", "scale(1)", "translate(1px 2px)", "translate(1px, 2px) rotate(3deg)", "translate(apx, 2px)"} {
		if _, err := ParseTransform(bad); !errors.Is(err, ErrBadTransform) {
			t.Errorf("ParseTransform(%q) error = %v, want ErrBadTransform", bad, err)
		}
	}
}
