package geom

// DefaultTraceSteps is the sample count of a trace. It trades smoothness for
// size and has no effect on where the samples lie.
const DefaultTraceSteps = 1000

// Curve is an ordered run of samples.
type Curve []Point

// SampleTrace samples the path of the primary corner over one round starting
// at round 0. The result has steps+1 points; sample i is at time i/steps.
func SampleTrace(lengthA, lengthB, speedupA, speedupB float64, steps int) Curve {
	if steps <= 0 {
		return Curve{Polar(lengthA, 0).Add(Polar(lengthB, 0))}
	}
	c := make(Curve, steps+1)
	for i := range c {
		t := float64(i) / float64(steps)
		c[i] = Polar(lengthA, speedupA*t).Add(Polar(lengthB, speedupB*t))
	}
	return c
}

// TraceFor samples the trace of d.
func TraceFor(d Dimensions, steps int) Curve {
	return SampleTrace(d.LengthA, d.LengthB, d.SpeedupA, d.SpeedupB, steps)
}

// Xs and Ys split the curve into coordinate slices.
func (c Curve) Xs() []float64 {
	xs := make([]float64, len(c))
	for i, p := range c {
		xs[i] = p.X
	}
	return xs
}

func (c Curve) Ys() []float64 {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Y
	}
	return ys
}
