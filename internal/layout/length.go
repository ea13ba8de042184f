package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadLength is returned by ParseLength for strings that are not CSS lengths.
var ErrBadLength = errors.New("invalid length")

// Unit is a CSS length unit.
type Unit string

const (
	UnitNone    Unit = ""
	UnitPx      Unit = "px"
	UnitPercent Unit = "%"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
	UnitVw      Unit = "vw"
	UnitVh      Unit = "vh"
	UnitVmin    Unit = "vmin"
	UnitVmax    Unit = "vmax"
	UnitPt      Unit = "pt"
	UnitPc      Unit = "pc"
	UnitIn      Unit = "in"
	UnitCm      Unit = "cm"
	UnitMm      Unit = "mm"
)

// absolute units in CSS pixels.
var absolute = map[Unit]float64{
	UnitPx: 1,
	UnitPt: 96.0 / 72,
	UnitPc: 16,
	UnitIn: 96,
	UnitCm: 96 / 2.54,
	UnitMm: 96 / 25.4,
}

// Length is a signed CSS length such as "150px" or "-2.5em".
type Length struct {
	Value float64
	Unit  Unit
}

// ResolveContext carries what relative units are measured against.
type ResolveContext struct {
	ViewportWidth  float64
	ViewportHeight float64
	FontSize       float64
	RootFontSize   float64
	// PercentBasis is the size "100%" refers to. For a translate offset that
	// is the element's own box along the same axis.
	PercentBasis float64
}

// ParseLength parses a CSS length. A bare number is only accepted for zero.
func ParseLength(s string) (Length, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Length{}, fmt.Errorf("%w: empty", ErrBadLength)
	}

	i := 0
	for i < len(s) && strings.IndexByte("+-.0123456789", s[i]) >= 0 {
		i++
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrBadLength, raw)
	}

	unit := Unit(s[i:])
	switch unit {
	case UnitNone:
		if value != 0 {
			return Length{}, fmt.Errorf("%w: %q has no unit", ErrBadLength, raw)
		}
	case UnitPercent, UnitEm, UnitRem, UnitVw, UnitVh, UnitVmin, UnitVmax:
	default:
		if _, ok := absolute[unit]; !ok {
			return Length{}, fmt.Errorf("%w: unknown unit in %q", ErrBadLength, raw)
		}
	}

	return Length{Value: value, Unit: unit}, nil
}

// Resolve converts the length to pixels.
func (l Length) Resolve(ctx ResolveContext) float64 {
	switch l.Unit {
	case UnitNone:
		return 0
	case UnitPercent:
		return l.Value * ctx.PercentBasis / 100
	case UnitEm:
		return l.Value * ctx.FontSize
	case UnitRem:
		return l.Value * ctx.RootFontSize
	case UnitVw:
		return l.Value * ctx.ViewportWidth / 100
	case UnitVh:
		return l.Value * ctx.ViewportHeight / 100
	case UnitVmin:
		return l.Value * min(ctx.ViewportWidth, ctx.ViewportHeight) / 100
	case UnitVmax:
		return l.Value * max(ctx.ViewportWidth, ctx.ViewportHeight) / 100
	}
	return l.Value * absolute[l.Unit]
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}
