package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/handspin/internal/geom"
)

// CurveToASCII plots c on a width x height character grid with the axes
// drawn where they cross the visible area.
func CurveToASCII(c geom.Curve, width, height int) string {
	if len(c) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs, ys := c.Xs(), c.Ys()
	bx, by := paddedSpan(xs), paddedSpan(ys)
	col := func(x float64) int { return int((x - bx.lo) / bx.width() * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-by.lo)/by.width()*float64(height-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i := range c {
		r, k := row(ys[i]), col(xs[i])
		if r >= 0 && r < height && k >= 0 && k < width {
			canvas[r][k] = '•'
		}
	}

	if bx.contains(0) {
		k := col(0)
		for r := range canvas {
			if canvas[r][k] == ' ' {
				canvas[r][k] = '│'
			}
		}
	}
	if by.contains(0) {
		line := canvas[row(0)]
		for k, ch := range line {
			switch ch {
			case ' ':
				line[k] = '─'
			case '│':
				line[k] = '┼'
			}
		}
	}

	var sb strings.Builder
	for i, line := range canvas {
		sb.WriteString(string(line))
		if i < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type span struct{ lo, hi float64 }

func (s span) width() float64          { return s.hi - s.lo }
func (s span) contains(v float64) bool { return s.lo <= v && v <= s.hi }

// paddedSpan is the range of vs widened by a tenth on each side. A flat
// series gets a unit range.
func paddedSpan(vs []float64) span {
	lo, hi := floats.Min(vs), floats.Max(vs)
	pad := (hi - lo) * 0.1
	if hi == lo {
		pad = 0.1
	}
	return span{lo - pad, hi + pad}
}
