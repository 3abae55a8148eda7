package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/handspin/internal/geom"
)

// Summary holds scalar measures of a sampled curve.
type Summary struct {
	Samples    int
	Length     float64
	MinRadius  float64
	MaxRadius  float64
	MeanRadius float64
	// RadiusStdDev is zero for a circle about the origin.
	RadiusStdDev float64
	Centroid     geom.Point
	ClosureGap   float64
}

// Summarize measures c. An empty curve gives the zero Summary.
func Summarize(c geom.Curve) Summary {
	if len(c) == 0 {
		return Summary{}
	}
	xs, ys := c.Xs(), c.Ys()

	radii := make([]float64, len(c))
	for i, p := range c {
		radii[i] = p.Norm()
	}

	s := Summary{
		Samples:    len(c),
		MinRadius:  floats.Min(radii),
		MaxRadius:  floats.Max(radii),
		MeanRadius: stat.Mean(radii, nil),
		ClosureGap: ClosureGap(c),
	}
	if len(c) > 1 {
		s.RadiusStdDev = stat.PopStdDev(radii, nil)
		s.Length = pathLength(xs, ys)
	}

	// The end point repeats the start on closed traces and would bias the mean.
	body := period(c)
	s.Centroid = geom.Point{
		X: stat.Mean(xs[:len(body)], nil),
		Y: stat.Mean(ys[:len(body)], nil),
	}
	return s
}

func pathLength(xs, ys []float64) float64 {
	n := len(xs) - 1
	dx := floats.SubTo(make([]float64, n), xs[1:], xs[:n])
	dy := floats.SubTo(make([]float64, n), ys[1:], ys[:n])
	total := 0.0
	for i := range dx {
		total += math.Hypot(dx[i], dy[i])
	}
	return total
}
