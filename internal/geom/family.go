package geom

// Family is an ordered set of hand tips. Index order defines polygon
// adjacency for renderers.
type Family []Point

// NewFamily places count hands of the given length at round t. Hand k sits at
// speedup*t + k/count turns.
func NewFamily(length, speedup float64, count int, t float64) Family {
	if count <= 0 {
		return Family{}
	}
	f := make(Family, count)
	base := speedup * t
	for k := range f {
		f[k] = Polar(length, base+float64(k)/float64(count))
	}
	return f
}

// Families returns both hand families of d at round t.
func Families(d Dimensions, t float64) (a, b Family) {
	a = NewFamily(d.LengthA, d.SpeedupA, d.CornersA, t)
	b = NewFamily(d.LengthB, d.SpeedupB, d.CornersB, t)
	return a, b
}

// Next returns the index after i, wrapping around.
func (f Family) Next(i int) int {
	if len(f) == 0 {
		return 0
	}
	return (i + 1) % len(f)
}
