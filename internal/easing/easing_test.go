package easing

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		name string
		want Spec
	}{
		{"linear", Spec{0, 0, 1, 1}},
		{"ease", Spec{0.25, 0.1, 0.25, 1}},
		{"easeIn", Spec{0.42, 0, 1, 1}},
		{"easeOut", Spec{0, 0, 0.58, 1}},
		{"easeInOut", Spec{0.42, 0, 0.58, 1}},
		{"materialEasing", Spec{0.4, 0, 0.2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(Named(tt.name))
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"unknown name", Named("bogus")},
		{"entry above one", Points(0.1, 0.2, 0.3, 1.2)},
		{"negative entry", Points(-0.1, 0, 1, 1)},
		{"too few points", Points(0.1, 0.2, 0.3)},
		{"too many points", Points(0, 0, 1, 1, 1)},
		{"NaN entry", Points(0, math.NaN(), 1, 1)},
		{"empty", Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.value)
			if !errors.Is(err, ErrInvalidEasing) {
				t.Errorf("Resolve(%v) error = %v, want ErrInvalidEasing", tt.value, err)
			}
		})
	}
}

func TestResolvePoints(t *testing.T) {
	got, err := Resolve(Points(0.1, 0.2, 0.3, 1))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != (Spec{0.1, 0.2, 0.3, 1}) {
		t.Errorf("unexpected spec %v", got)
	}
}

func TestPresetsIsACopy(t *testing.T) {
	table := Presets()
	table[Linear] = Spec{1, 1, 1, 1}

	spec, ok := Preset(Linear)
	if !ok || spec != (Spec{0, 0, 1, 1}) {
		t.Errorf("preset table was mutated through Presets(): %v", spec)
	}
	if len(PresetNames()) != 6 {
		t.Errorf("expected 6 preset names, got %v", PresetNames())
	}
}

func TestValueJSON(t *testing.T) {
	var named Value
	if err := json.Unmarshal([]byte(`"easeOut"`), &named); err != nil {
		t.Fatalf("unmarshal name: %v", err)
	}
	if named.Name != "easeOut" {
		t.Errorf("expected easeOut, got %+v", named)
	}

	var points Value
	if err := json.Unmarshal([]byte(`[0.4, 0, 0.2, 1]`), &points); err != nil {
		t.Fatalf("unmarshal points: %v", err)
	}
	spec, err := Resolve(points)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if spec != presets[MaterialEasing] {
		t.Errorf("expected material easing points, got %v", spec)
	}

	var bad Value
	if err := json.Unmarshal([]byte(`{"x": 1}`), &bad); !errors.Is(err, ErrInvalidEasing) {
		t.Errorf("expected ErrInvalidEasing for object, got %v", err)
	}
}

func TestValueYAML(t *testing.T) {
	var doc struct {
		A Value `yaml:"a"`
		B Value `yaml:"b"`
	}
	src := "a: ease\nb: [0.42, 0, 0.58, 1]\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if doc.A.Name != "ease" {
		t.Errorf("expected name ease, got %+v", doc.A)
	}
	if len(doc.B.Points) != 4 || doc.B.Points[0] != 0.42 {
		t.Errorf("unexpected points %+v", doc.B)
	}
}

func TestBezierEndpoints(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			spec, _ := Preset(name)
			f := spec.Func()
			if f(0) != 0 {
				t.Errorf("f(0) = %v, want 0", f(0))
			}
			if f(1) != 1 {
				t.Errorf("f(1) = %v, want 1", f(1))
			}
		})
	}
}

func TestBezierLinearIsIdentity(t *testing.T) {
	f := presets[Linear].Func()
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if f(x) != x {
			t.Errorf("linear(%v) = %v", x, f(x))
		}
	}
}

func TestBezierEaseInOutSymmetric(t *testing.T) {
	f := presets[EaseInOut].Func()

	if got := f(0.5); math.Abs(got-0.5) > 1e-5 {
		t.Errorf("easeInOut(0.5) = %v, want 0.5", got)
	}

	for _, x := range []float64{0.1, 0.2, 0.3, 0.4} {
		a := f(x)
		b := f(1 - x)
		if math.Abs(a+b-1) > 1e-5 {
			t.Errorf("easeInOut not symmetric at %v: %v + %v", x, a, b)
		}
	}
}

func TestBezierMonotonic(t *testing.T) {
	for _, name := range PresetNames() {
		spec, _ := Preset(name)
		f := spec.Func()
		prev := 0.0
		for i := 1; i <= 100; i++ {
			x := float64(i) / 100
			y := f(x)
			if y < prev-1e-9 {
				t.Errorf("%s decreased at %v: %v < %v", name, x, y, prev)
				break
			}
			prev = y
		}
	}
}

func TestBezierKnownValues(t *testing.T) {
	// Reference values of the CSS "ease-in" curve.
	f := presets[EaseIn].Func()
	tests := []struct {
		x, want float64
	}{
		{0.25, 0.0935},
		{0.5, 0.3154},
		{0.75, 0.6219},
	}
	for _, tt := range tests {
		if got := f(tt.x); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("easeIn(%v) = %.4f, want ~%.4f", tt.x, got, tt.want)
		}
	}
}
