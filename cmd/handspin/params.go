package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/san-kum/handspin/internal/config"
)

// paramFlags are the parameter flags shared by every command.
type paramFlags struct {
	params     string
	preset     string
	configFile string

	cornersA    int
	cornersB    int
	percentageA float64
	baseSpeed   float64
	manual      bool
	speedupA    float64
	speedupB    float64
	show        []string
	hide        []string
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	d := config.DefaultParams()
	fs.StringVar(&f.params, "params", "", "configuration string, e.g. '#C&T&cA=5&cB=2'")
	fs.StringVar(&f.preset, "preset", "", "named preset (see 'presets')")
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.IntVar(&f.cornersA, "corners-a", d.CornersA, "corners of family A")
	fs.IntVar(&f.cornersB, "corners-b", d.CornersB, "corners of family B")
	fs.Float64Var(&f.percentageA, "percentage-a", d.PercentageA, "hand length A in percent")
	fs.Float64Var(&f.baseSpeed, "base-speed", d.BaseSpeed, "base speed in rounds per minute")
	fs.BoolVar(&f.manual, "manual", false, "use --speedup-a/--speedup-b instead of the automatic speedups")
	fs.Float64Var(&f.speedupA, "speedup-a", d.SpeedupA, "manual speedup of family A")
	fs.Float64Var(&f.speedupB, "speedup-b", d.SpeedupB, "manual speedup of family B")
	fs.StringSliceVar(&f.show, "show", nil, "element codes to switch on, e.g. C,T,E2B")
	fs.StringSliceVar(&f.hide, "hide", nil, "element codes to switch off")
}

// resolve builds the parameter set: a preset or configuration string first,
// then the YAML file on top, then every explicitly set flag.
func (f *paramFlags) resolve(fs *pflag.FlagSet) (config.Params, error) {
	p := config.DefaultParams()

	if f.preset != "" {
		pre, ok := config.GetPreset(f.preset)
		if !ok {
			return p, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
		}
		p = pre
	}
	if f.params != "" {
		p = config.Decode(f.params)
	}

	if f.configFile != "" {
		loaded, err := config.LoadOver(f.configFile, p)
		if err != nil {
			return p, fmt.Errorf("failed to load config: %w", err)
		}
		p = loaded
	}

	if fs.Changed("corners-a") {
		p.CornersA = f.cornersA
	}
	if fs.Changed("corners-b") {
		p.CornersB = f.cornersB
	}
	if fs.Changed("percentage-a") {
		p.PercentageA = f.percentageA
	}
	if fs.Changed("base-speed") {
		p.BaseSpeed = f.baseSpeed
	}
	if fs.Changed("manual") {
		p.ManualSpeedup = f.manual
	}
	if fs.Changed("speedup-a") {
		p.SpeedupA = f.speedupA
	}
	if fs.Changed("speedup-b") {
		p.SpeedupB = f.speedupB
	}

	var err error
	if p, err = setFlags(p, f.show, true); err != nil {
		return p, err
	}
	if p, err = setFlags(p, f.hide, false); err != nil {
		return p, err
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func setFlags(p config.Params, codes []string, on bool) (config.Params, error) {
	for _, code := range codes {
		code = strings.TrimSpace(code)
		field, ok := config.FlagField(code)
		if !ok {
			return p, fmt.Errorf("unknown element code: %s", code)
		}
		if field.Get(p) != on {
			p = field.Toggle(p)
		}
	}
	return p, nil
}
