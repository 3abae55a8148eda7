package analysis

import (
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
)

// SweepPoint is the analysis of one corner-count pair.
type SweepPoint struct {
	CornersA, CornersB int
	Symmetry           int
	Closed             bool
	Summary            Summary
}

// SweepCorners analyses every pair 1..maxA by 1..maxB on top of base, in
// row-major order. Non-positive bounds give no points.
func SweepCorners(base config.Params, maxA, maxB, steps int) []SweepPoint {
	if maxA <= 0 || maxB <= 0 {
		return nil
	}
	results := make([]SweepPoint, maxA*maxB)
	parallelFor(len(results), 4, func(start, end int) {
		for i := start; i < end; i++ {
			p := base
			p.CornersA, p.CornersB = i/maxB+1, i%maxB+1

			d := geom.Resolve(p)
			results[i] = SweepPoint{
				CornersA: p.CornersA,
				CornersB: p.CornersB,
				Symmetry: SymmetryOrder(d),
				Closed:   IsClosed(d),
				Summary:  Summarize(geom.TraceFor(d, steps)),
			}
		}
	})
	return results
}
