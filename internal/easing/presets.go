package easing

import "sort"

// Preset names.
const (
	Linear         = "linear"
	Ease           = "ease"
	EaseIn         = "easeIn"
	EaseOut        = "easeOut"
	EaseInOut      = "easeInOut"
	MaterialEasing = "materialEasing"
)

// presets is written once at init and only read afterwards.
var presets = map[string]Spec{
	Linear:         {0, 0, 1, 1},
	Ease:           {0.25, 0.1, 0.25, 1},
	EaseIn:         {0.42, 0, 1, 1},
	EaseOut:        {0, 0, 0.58, 1},
	EaseInOut:      {0.42, 0, 0.58, 1},
	MaterialEasing: {0.4, 0, 0.2, 1},
}

// Preset looks up a named curve.
func Preset(name string) (Spec, bool) {
	spec, ok := presets[name]
	return spec, ok
}

// Presets returns a copy of the preset table.
func Presets() map[string]Spec {
	result := make(map[string]Spec, len(presets))
	for k, v := range presets {
		result[k] = v
	}
	return result
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
