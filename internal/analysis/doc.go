// Package analysis characterizes the trace of the primary corner.
//
//   - [Spectrum]: Fourier components of the trace seen as x+iy
//   - [SymmetryOrder]: rotational symmetry of a closed trace
//   - [Summarize]: length, radius and centroid of a curve
//   - [SweepCorners]: summary of every corner-count pair up to a bound
//   - [CurveToASCII]: quick terminal plot of a curve
//
// With integral speedups the trace is a sum of two circles, so its spectrum
// has exactly two non-zero bins at the speedups, with the hand lengths as
// amplitudes:
//
//	comps := analysis.Spectrum(geom.TraceFor(d, 1000))
//	// comps[0] = {Frequency: 3, Amplitude: 0.6} for the defaults
package analysis
