package metrics

import (
	"math"
	"sort"

	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/session"
)

// PathLength is the distance travelled by the primary corner.
type PathLength struct {
	name string
	last geom.Point
	seen bool
	dist float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (m *PathLength) Name() string { return m.name }

func (m *PathLength) Observe(f session.Frame) {
	p, ok := f.Primary()
	if !ok {
		return
	}
	if m.seen {
		m.dist += p.Dist(m.last)
	}
	m.last, m.seen = p, true
}

func (m *PathLength) Value() float64 { return m.dist }

func (m *PathLength) Reset() {
	m.dist = 0
	m.seen = false
}

// PeakRadius is the largest distance of any corner from the origin.
type PeakRadius struct {
	name string
	max  float64
}

func NewPeakRadius() *PeakRadius {
	return &PeakRadius{name: "peak_radius"}
}

func (m *PeakRadius) Name() string { return m.name }

func (m *PeakRadius) Observe(f session.Frame) {
	f.Grid.Each(func(_, _ int, p geom.Point) {
		m.max = math.Max(m.max, p.Norm())
	})
}

func (m *PeakRadius) Value() float64 { return m.max }
func (m *PeakRadius) Reset()         { m.max = 0 }

// RoundsCovered is the net simulated time between the first and last frame.
type RoundsCovered struct {
	name        string
	first, last float64
	samples     int
}

func NewRoundsCovered() *RoundsCovered {
	return &RoundsCovered{name: "rounds"}
}

func (m *RoundsCovered) Name() string { return m.name }

func (m *RoundsCovered) Observe(f session.Frame) {
	if m.samples == 0 {
		m.first = f.Rounds
	}
	m.last = f.Rounds
	m.samples++
}

func (m *RoundsCovered) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.last - m.first
}

func (m *RoundsCovered) Reset() {
	m.first, m.last = 0, 0
	m.samples = 0
}

// MinSpread is the smallest distance between two corners seen in any frame,
// which drops to zero when corners coincide. Pairs are found with a sweep over
// corners sorted by x, so spread-out grids cost close to n log n per frame.
type MinSpread struct {
	name string
	min  float64
	pts  []geom.Point
}

func NewMinSpread() *MinSpread {
	return &MinSpread{name: "min_spread", min: math.Inf(1)}
}

func (m *MinSpread) Name() string { return m.name }

func (m *MinSpread) Observe(f session.Frame) {
	m.pts = m.pts[:0]
	f.Grid.Each(func(_, _ int, p geom.Point) { m.pts = append(m.pts, p) })
	sort.Slice(m.pts, func(i, j int) bool { return m.pts[i].X < m.pts[j].X })

	for i := 0; i < len(m.pts) && m.min > 0; i++ {
		for j := i + 1; j < len(m.pts); j++ {
			if m.pts[j].X-m.pts[i].X >= m.min {
				break
			}
			m.min = math.Min(m.min, m.pts[i].Dist(m.pts[j]))
		}
	}
}

func (m *MinSpread) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinSpread) Reset() { m.min = math.Inf(1) }

// Default returns the metrics recorded with every run.
func Default() []session.Metric {
	return []session.Metric{
		NewPathLength(),
		NewPeakRadius(),
		NewRoundsCovered(),
		NewMinSpread(),
	}
}
