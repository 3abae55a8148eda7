package geom

import "github.com/san-kum/handspin/internal/config"

// Dimensions are the geometric constants derived from a parameter set.
type Dimensions struct {
	CornersA, CornersB int
	LengthA, LengthB   float64
	SpeedupA, SpeedupB float64
}

// Resolve derives hand lengths and angular speeds from p. Without manual
// speedup each family turns as fast as the other family has corners, and in
// the opposite sense.
func Resolve(p config.Params) Dimensions {
	d := Dimensions{
		CornersA: p.CornersA,
		CornersB: p.CornersB,
		LengthA:  p.PercentageA / 100,
	}
	d.LengthB = 1 - d.LengthA

	if p.ManualSpeedup {
		d.SpeedupA = p.SpeedupA
		d.SpeedupB = p.SpeedupB
	} else {
		d.SpeedupA = float64(p.CornersB)
		d.SpeedupB = -float64(p.CornersA)
	}
	return d
}
