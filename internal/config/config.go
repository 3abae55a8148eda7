package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCornersA    = 4
	DefaultCornersB    = 3
	DefaultPercentageA = 60.0
	DefaultBaseSpeed   = 2.0
	DefaultSpeedupA    = 3.0
	DefaultSpeedupB    = -4.0

	// MaxCorners bounds the family sizes accepted from strings and files.
	MaxCorners = 64
)

var (
	ErrCornersRange    = errors.New("config: corner count out of range")
	ErrPercentageRange = errors.New("config: percentage out of range")
)

// Params is the complete configuration of the illustration. It is a value
// type: owners replace it whole instead of mutating a shared copy.
type Params struct {
	CornersA      int     `yaml:"corners_a"`
	CornersB      int     `yaml:"corners_b"`
	PercentageA   float64 `yaml:"percentage_a"`
	BaseSpeed     float64 `yaml:"base_speed"`
	ManualSpeedup bool    `yaml:"manual_speedup"`
	SpeedupA      float64 `yaml:"speedup_a"`
	SpeedupB      float64 `yaml:"speedup_b"`
	Flags         Flags   `yaml:"flags"`
}

// Flags selects which visual elements a renderer draws. Blue is family A,
// red is family B. Every flag defaults to false.
type Flags struct {
	PrimaryAxis        bool `yaml:"primary_axis"`
	PrimaryHandsBlue   bool `yaml:"primary_hands_blue"`
	PrimaryHandsRed    bool `yaml:"primary_hands_red"`
	PrimaryEdgesBlue   bool `yaml:"primary_edges_blue"`
	PrimaryEdgesRed    bool `yaml:"primary_edges_red"`
	SecondaryAxesBlue  bool `yaml:"secondary_axes_blue"`
	SecondaryAxesRed   bool `yaml:"secondary_axes_red"`
	SecondaryHandsBlue bool `yaml:"secondary_hands_blue"`
	SecondaryHandsRed  bool `yaml:"secondary_hands_red"`
	SecondaryEdgesBlue bool `yaml:"secondary_edges_blue"`
	SecondaryEdgesRed  bool `yaml:"secondary_edges_red"`
	Corners            bool `yaml:"corners"`
	Trace              bool `yaml:"trace"`
}

// Any reports whether at least one element is switched on.
func (f Flags) Any() bool {
	return f != Flags{}
}

func DefaultParams() Params {
	return Params{
		CornersA:    DefaultCornersA,
		CornersB:    DefaultCornersB,
		PercentageA: DefaultPercentageA,
		BaseSpeed:   DefaultBaseSpeed,
		SpeedupA:    DefaultSpeedupA,
		SpeedupB:    DefaultSpeedupB,
	}
}

// Validate checks the ranges that the geometry relies on.
func (p Params) Validate() error {
	if p.CornersA < 0 || p.CornersA > MaxCorners {
		return fmt.Errorf("corners_a=%d: %w", p.CornersA, ErrCornersRange)
	}
	if p.CornersB < 0 || p.CornersB > MaxCorners {
		return fmt.Errorf("corners_b=%d: %w", p.CornersB, ErrCornersRange)
	}
	if p.PercentageA < 0 || p.PercentageA > 100 {
		return fmt.Errorf("percentage_a=%g: %w", p.PercentageA, ErrPercentageRange)
	}
	return nil
}

// Load reads a YAML file on top of DefaultParams.
func Load(path string) (Params, error) {
	return LoadOver(path, DefaultParams())
}

// LoadOver reads a YAML file on top of base; keys missing from the file keep
// the value from base.
func LoadOver(path string, base Params) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, err
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// YAML renders p the way Save writes it.
func (p Params) YAML() (string, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
