package config

import "sort"

// Preset is a named set of raw form values, in form order
// (mass1, mass2, velocity1, velocity2).
type Preset struct {
	Description string
	Values      [4]string
}

var Presets = map[string]Preset{
	"swap": {
		Description: "equal masses head-on, velocities swap",
		Values:      [4]string{"1", "1", "5", "-5"},
	},
	"heavy": {
		Description: "3:1 mass ratio hitting a resting body",
		Values:      [4]string{"3", "1", "4", "0"},
	},
	"rest": {
		Description: "nothing moves",
		Values:      [4]string{"1", "1", "0", "0"},
	},
	"feather": {
		Description: "very light body against a heavy one",
		Values:      [4]string{"1000", "0.1", "2", "-10"},
	},
	"chase": {
		Description: "same direction, faster body catches up",
		Values:      [4]string{"2", "1", "12", "3"},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
