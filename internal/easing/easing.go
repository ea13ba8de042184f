package easing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrInvalidEasing is returned when an easing is neither a known preset name
// nor a list of four numbers in [0,1].
var ErrInvalidEasing = errors.New("invalid cubic bezier")

// Spec is a resolved cubic-bezier control list: x1, y1, x2, y2.
type Spec [4]float64

// Value is an unresolved easing as it arrives from callers: either a preset
// name or a raw control-point list. Exactly one of the fields is meaningful;
// a non-empty Name wins.
type Value struct {
	Name   string
	Points []float64
}

// Named returns a Value referring to a preset.
func Named(name string) Value {
	return Value{Name: name}
}

// Points returns a Value holding raw control points.
func Points(points ...float64) Value {
	return Value{Points: points}
}

// IsZero reports whether the value carries neither a name nor points.
func (v Value) IsZero() bool {
	return v.Name == "" && v.Points == nil
}

func (v Value) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprint(v.Points)
}

// Resolve turns a preset name or control-point list into a Spec.
func Resolve(v Value) (Spec, error) {
	if v.Name != "" {
		spec, ok := presets[v.Name]
		if !ok {
			return Spec{}, fmt.Errorf("%w: unknown named curve %q", ErrInvalidEasing, v.Name)
		}
		return spec, nil
	}

	if len(v.Points) != 4 {
		return Spec{}, fmt.Errorf("%w: expected 4 control points, got %d", ErrInvalidEasing, len(v.Points))
	}

	var spec Spec
	for i, p := range v.Points {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return Spec{}, fmt.Errorf("%w: control point %d (%v) must be between 0 and 1", ErrInvalidEasing, i, p)
		}
		spec[i] = p
	}
	return spec, nil
}

// Func returns the easing transform for these control points.
func (s Spec) Func() Func {
	return NewBezier(s[0], s[1], s[2], s[3])
}

// Slice returns the control points as a slice for JSON serialization.
func (s Spec) Slice() []float64 {
	return []float64{s[0], s[1], s[2], s[3]}
}

// MarshalJSON encodes the value as its name or its point list.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Name != "" {
		return json.Marshal(v.Name)
	}
	return json.Marshal(v.Points)
}

// UnmarshalJSON accepts either a string or an array of numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*v = Value{Name: name}
		return nil
	}

	var points []float64
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("%w: must be a curve name or an array of numbers", ErrInvalidEasing)
	}
	*v = Value{Points: points}
	return nil
}

// UnmarshalYAML accepts either a scalar name or a sequence of numbers.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Value{Name: node.Value}
		return nil
	case yaml.SequenceNode:
		var points []float64
		if err := node.Decode(&points); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEasing, err)
		}
		*v = Value{Points: points}
		return nil
	default:
		return fmt.Errorf("%w: must be a curve name or a list of numbers (line %d)", ErrInvalidEasing, node.Line)
	}
}

// MarshalYAML encodes the value as its name or its point list.
func (v Value) MarshalYAML() (interface{}, error) {
	if v.Name != "" {
		return v.Name, nil
	}
	return v.Points, nil
}
