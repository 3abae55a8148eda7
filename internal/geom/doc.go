// Package geom holds the pure geometry of the illustration.
//
// Two families of hands rotate about the origin. Family A has CornersA hands
// of length LengthA turning at SpeedupA turns per round; family B likewise.
// Adding every hand of A to every hand of B gives the corner grid:
//
//   - [Resolve]: parameters to [Dimensions]
//   - [NewFamily]: hand tips of one family at a given round
//   - [Compose]: the corner grid of two families
//   - [SampleTrace]: the static path of the primary corner over one round
//
// Angles are measured in turns, so a hand at angle 1 is back where it started.
// With automatic speedups (SpeedupA = CornersB, SpeedupB = -CornersA) and
// coprime corner counts the primary corner closes its path after one round.
//
// All functions are deterministic and allocate only their results; they are
// safe to call from any goroutine.
package geom
