package config

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the value kind of an encoded field.
type Kind string

const (
	// KindBool fields are true when their code is present.
	KindBool Kind = "bool"
	// KindNumber fields are written as code=value.
	KindNumber Kind = "number"
)

// Field describes one entry of the configuration string.
type Field struct {
	Code  string
	Kind  Kind
	Label string

	flag   func(*Params) *bool
	format func(Params) string
	parse  func(*Params, string) bool
}

func boolField(code, label string, flag func(*Params) *bool) Field {
	return Field{Code: code, Kind: KindBool, Label: label, flag: flag}
}

func cornersField(code, label string, ptr func(*Params) *int) Field {
	return Field{
		Code:  code,
		Kind:  KindNumber,
		Label: label,
		format: func(p Params) string {
			return strconv.Itoa(*ptr(&p))
		},
		parse: func(p *Params, s string) bool {
			v, ok := parseFinite(s)
			if !ok || v != math.Trunc(v) || v < 0 || v > MaxCorners {
				return false
			}
			*ptr(p) = int(v)
			return true
		},
	}
}

func realField(code, label string, ptr func(*Params) *float64, valid func(float64) bool) Field {
	return Field{
		Code:  code,
		Kind:  KindNumber,
		Label: label,
		format: func(p Params) string {
			return strconv.FormatFloat(*ptr(&p), 'g', -1, 64)
		},
		parse: func(p *Params, s string) bool {
			v, ok := parseFinite(s)
			if !ok || (valid != nil && !valid(v)) {
				return false
			}
			*ptr(p) = v
			return true
		},
	}
}

// parseFinite accepts plain decimal numbers with an optional exponent, the
// forms Encode writes. Hex, underscores and inf/nan spellings are rejected.
func parseFinite(s string) (float64, bool) {
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// fields is ordered; Encode writes entries in this order.
var fields = []Field{
	boolField("A1", "primary axis", func(p *Params) *bool { return &p.Flags.PrimaryAxis }),
	boolField("H1B", "blue primary hands", func(p *Params) *bool { return &p.Flags.PrimaryHandsBlue }),
	boolField("H1R", "red primary hands", func(p *Params) *bool { return &p.Flags.PrimaryHandsRed }),
	boolField("E1B", "blue primary edges", func(p *Params) *bool { return &p.Flags.PrimaryEdgesBlue }),
	boolField("E1R", "red primary edges", func(p *Params) *bool { return &p.Flags.PrimaryEdgesRed }),
	boolField("A2B", "blue secondary axes", func(p *Params) *bool { return &p.Flags.SecondaryAxesBlue }),
	boolField("A2R", "red secondary axes", func(p *Params) *bool { return &p.Flags.SecondaryAxesRed }),
	boolField("H2B", "blue secondary hands", func(p *Params) *bool { return &p.Flags.SecondaryHandsBlue }),
	boolField("H2R", "red secondary hands", func(p *Params) *bool { return &p.Flags.SecondaryHandsRed }),
	boolField("E2B", "blue secondary edges", func(p *Params) *bool { return &p.Flags.SecondaryEdgesBlue }),
	boolField("E2R", "red secondary edges", func(p *Params) *bool { return &p.Flags.SecondaryEdgesRed }),
	boolField("C", "corners", func(p *Params) *bool { return &p.Flags.Corners }),
	boolField("T", "trace", func(p *Params) *bool { return &p.Flags.Trace }),
	cornersField("cA", "corners A", func(p *Params) *int { return &p.CornersA }),
	cornersField("cB", "corners B", func(p *Params) *int { return &p.CornersB }),
	realField("pA", "hand length A (%)", func(p *Params) *float64 { return &p.PercentageA },
		func(v float64) bool { return v >= 0 && v <= 100 }),
	realField("bS", "base speed (rounds/min)", func(p *Params) *float64 { return &p.BaseSpeed }, nil),
	boolField("MS", "manual speedup", func(p *Params) *bool { return &p.ManualSpeedup }),
	realField("sA", "speedup A", func(p *Params) *float64 { return &p.SpeedupA }, nil),
	realField("sB", "speedup B", func(p *Params) *float64 { return &p.SpeedupB }, nil),
}

// Fields returns a copy of the code table in encoding order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FlagField looks up a boolean field by code.
func FlagField(code string) (Field, bool) {
	for _, f := range fields {
		if f.Code == code && f.Kind == KindBool {
			return f, true
		}
	}
	return Field{}, false
}

// LookupField finds any field by code.
func LookupField(code string) (Field, bool) {
	for _, f := range fields {
		if f.Code == code {
			return f, true
		}
	}
	return Field{}, false
}

// Set parses value into a numeric field with the same rules as Decode. It
// returns p unchanged and false when the value is unusable.
func (f Field) Set(p Params, value string) (Params, bool) {
	if f.parse == nil {
		return p, false
	}
	q := p
	if !f.parse(&q, value) {
		return p, false
	}
	return q, true
}

// Get reports the current value of a boolean field in p.
func (f Field) Get(p Params) bool {
	if f.flag == nil {
		return false
	}
	return *f.flag(&p)
}

// Toggle returns p with the boolean field flipped.
func (f Field) Toggle(p Params) Params {
	if f.flag != nil {
		b := f.flag(&p)
		*b = !*b
	}
	return p
}
