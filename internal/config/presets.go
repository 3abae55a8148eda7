package config

import "sort"

var Presets = map[string]Params{
	"classic": {
		CornersA: 4, CornersB: 3, PercentageA: 60, BaseSpeed: 2, SpeedupA: 3, SpeedupB: -4,
		Flags: Flags{SecondaryEdgesBlue: true, Corners: true, Trace: true},
	},
	"hands": {
		CornersA: 4, CornersB: 3, PercentageA: 60, BaseSpeed: 1, SpeedupA: 3, SpeedupB: -4,
		Flags: Flags{
			PrimaryAxis: true, PrimaryHandsBlue: true, PrimaryHandsRed: true,
			SecondaryHandsBlue: true, SecondaryHandsRed: true, Corners: true,
		},
	},
	"polygons": {
		CornersA: 4, CornersB: 3, PercentageA: 60, BaseSpeed: 1, SpeedupA: 3, SpeedupB: -4,
		Flags: Flags{
			PrimaryEdgesBlue: true, PrimaryEdgesRed: true,
			SecondaryEdgesBlue: true, SecondaryEdgesRed: true, Corners: true,
		},
	},
	"pentagram": {
		CornersA: 5, CornersB: 2, PercentageA: 50, BaseSpeed: 2, SpeedupA: 2, SpeedupB: -5,
		Flags: Flags{SecondaryEdgesBlue: true, SecondaryEdgesRed: true, Corners: true, Trace: true},
	},
	"reverse": {
		CornersA: 4, CornersB: 3, PercentageA: 60, BaseSpeed: -2, SpeedupA: 3, SpeedupB: -4,
		Flags: Flags{SecondaryEdgesBlue: true, Corners: true, Trace: true},
	},
	"drift": {
		CornersA: 3, CornersB: 2, PercentageA: 70, BaseSpeed: 1, ManualSpeedup: true, SpeedupA: 1.5, SpeedupB: -2.5,
		Flags: Flags{SecondaryAxesBlue: true, SecondaryAxesRed: true, Corners: true, Trace: true},
	},
	"shared-factor": {
		CornersA: 4, CornersB: 2, PercentageA: 50, BaseSpeed: 2, SpeedupA: 2, SpeedupB: -4,
		Flags: Flags{SecondaryEdgesBlue: true, SecondaryEdgesRed: true, Corners: true, Trace: true},
	},
}

// GetPreset returns the named preset and whether it exists.
func GetPreset(name string) (Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns the preset names in alphabetical order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
