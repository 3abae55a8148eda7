package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/handspin/internal/geom"
)

// Component is one Fourier term of a closed curve. Frequency is in turns per
// round and Amplitude is the radius of the circle it contributes.
type Component struct {
	Frequency int
	Amplitude float64
}

// Spectrum returns the components of c ordered by decreasing amplitude.
// The curve is treated as one period; a duplicated end point, as produced by
// geom.SampleTrace, is dropped first. Components below eps are omitted.
func Spectrum(c geom.Curve) []Component {
	c = period(c)
	n := len(c)
	if n == 0 {
		return nil
	}

	z := make([]complex128, n)
	for i, p := range c {
		z[i] = complex(p.X, p.Y)
	}
	// go-dsp uses the forward sign e^{-2πi kn/N}, so bin k picks up
	// e^{+2πi k t}: a hand turning k times per round.
	bins := fft.FFT(z)

	const eps = 1e-9
	comps := make([]Component, 0, 4)
	for k, b := range bins {
		amp := cmplx.Abs(b) / float64(n)
		if amp < eps {
			continue
		}
		freq := k
		if k > n/2 {
			freq = k - n
		}
		comps = append(comps, Component{Frequency: freq, Amplitude: amp})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return comps[i].Amplitude > comps[j].Amplitude
	})
	return comps
}

// DominantFrequencies returns the frequencies of the n strongest components.
func DominantFrequencies(c geom.Curve, n int) []int {
	comps := Spectrum(c)
	if n > len(comps) {
		n = len(comps)
	}
	out := make([]int, 0, n)
	for _, comp := range comps[:n] {
		out = append(out, comp.Frequency)
	}
	return out
}

func period(c geom.Curve) geom.Curve {
	if len(c) > 1 && c[0].Dist(c[len(c)-1]) < 1e-9 {
		return c[:len(c)-1]
	}
	return c
}

// SymmetryOrder is the order of the rotation group of the trace of d, or 0
// when the speedups are not integral or equal. The defaults give 7.
func SymmetryOrder(d geom.Dimensions) int {
	a, okA := integral(d.SpeedupA)
	b, okB := integral(d.SpeedupB)
	if !okA || !okB {
		return 0
	}
	if d.LengthA == 0 || d.LengthB == 0 {
		// A single circle; any rotation maps it to itself.
		return 0
	}
	diff := abs(a - b)
	if diff == 0 {
		return 0
	}
	return diff / gcd(abs(a), diff)
}

// ClosureGap is the distance between the start and end of c.
func ClosureGap(c geom.Curve) float64 {
	if len(c) < 2 {
		return 0
	}
	return c[0].Dist(c[len(c)-1])
}

// IsClosed reports whether the trace of d returns to its start after one
// round, which holds exactly when both speedups are integral.
func IsClosed(d geom.Dimensions) bool {
	_, okA := integral(d.SpeedupA)
	_, okB := integral(d.SpeedupB)
	return okA && okB
}

func integral(v float64) (int, bool) {
	r := math.Round(v)
	if math.Abs(v-r) > 1e-9 {
		return 0, false
	}
	return int(r), true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
