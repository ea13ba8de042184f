package motion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadTransform is returned by ParseTransform for strings not produced by
// Frame.Transform.
var ErrBadTransform = errors.New("malformed transform")

// Transform renders the frame's translation and scale as a CSS transform,
// e.g. "translate(2.5px, 5px) scale(1)".
func (f Frame) Transform() string {
	return "translate(" + FormatNumber(f.X) + "px, " + FormatNumber(f.Y) + "px) scale(" + FormatNumber(f.Scale) + ")"
}

// FormatNumber prints v in its shortest decimal form, rounded to six places.
// Negative zero prints as "0".
func FormatNumber(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseTransform reads back a transform written by Frame.Transform. Opacity
// is not part of the string and is left zero.
func ParseTransform(s string) (Frame, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "translate(")
	if !ok {
		return Frame{}, fmt.Errorf("%w: %q", ErrBadTransform, s)
	}

	translate, scale, ok := strings.Cut(rest, ")")
	if !ok {
		return Frame{}, fmt.Errorf("%w: %q", ErrBadTransform, s)
	}

	xs, ys, ok := strings.Cut(translate, ",")
	if !ok {
		return Frame{}, fmt.Errorf("%w: %q", ErrBadTransform, s)
	}

	x, err := parsePixels(xs)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadTransform, err)
	}
	y, err := parsePixels(ys)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadTransform, err)
	}

	frame := Frame{X: x, Y: y, Scale: 1}

	scale = strings.TrimSpace(scale)
	if scale == "" {
		return frame, nil
	}
	inner, ok := strings.CutPrefix(scale, "scale(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return Frame{}, fmt.Errorf("%w: %q", ErrBadTransform, s)
	}
	frame.Scale, err = strconv.ParseFloat(strings.TrimSuffix(inner, ")"), 64)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadTransform, err)
	}
	return frame, nil
}

func parsePixels(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(s, 64)
}
