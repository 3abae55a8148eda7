// Package render turns session frames into pictures.
//
// A frame is first flattened into a [Scene] of lines, dots and polylines in
// model coordinates, painted in slice order. The SVG and PNG writers only
// differ in how they emit those primitives. Model space spans
// [-1.1, 1.1] on both axes with y pointing down, as on an SVG canvas.
package render

import (
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/session"
)

// Extent is the half-width of the visible model square.
const Extent = 1.1

// Named colors; the PNG writer maps them to hex values.
const (
	Blue      = "blue"
	Red       = "red"
	Magenta   = "magenta"
	Black     = "black"
	LightGrey = "lightgrey"
)

const (
	primaryWidth   = 0.02
	secondaryWidth = 0.01
	endRadius      = 0.03
	cornerRadius   = 0.02
	axisRadius     = 0.03
)

type Line struct {
	From, To geom.Point
	Color    string
	Width    float64
}

type Dot struct {
	At     geom.Point
	Color  string
	Radius float64
}

type Polyline struct {
	Points geom.Curve
	Color  string
	Width  float64
}

// Item is one primitive; exactly one field is set.
type Item struct {
	Line     *Line
	Dot      *Dot
	Polyline *Polyline
}

// Scene is an ordered list of primitives.
type Scene struct {
	Items []Item
}

func (s *Scene) line(from, to geom.Point, color string, width float64) {
	s.Items = append(s.Items, Item{Line: &Line{From: from, To: to, Color: color, Width: width}})
}

func (s *Scene) dot(at geom.Point, color string, r float64) {
	s.Items = append(s.Items, Item{Dot: &Dot{At: at, Color: color, Radius: r}})
}

// Count returns the number of lines, dots and polylines.
func (s Scene) Count() (lines, dots, polylines int) {
	for _, it := range s.Items {
		switch {
		case it.Line != nil:
			lines++
		case it.Dot != nil:
			dots++
		case it.Polyline != nil:
			polylines++
		}
	}
	return lines, dots, polylines
}

// Build lays out f according to its display flags. trace is drawn underneath
// everything else when the trace flag is set; it may be nil otherwise.
func Build(f session.Frame, trace geom.Curve) Scene {
	var s Scene
	flags := f.Params.Flags
	a, b, g := f.A, f.B, f.Grid
	origin := geom.Point{}

	if flags.Trace && len(trace) > 1 {
		s.Items = append(s.Items, Item{Polyline: &Polyline{Points: trace, Color: LightGrey, Width: secondaryWidth}})
	}
	if flags.SecondaryEdgesBlue {
		g.Each(func(i, j int, p geom.Point) {
			s.line(p, g[i][b.Next(j)], Blue, secondaryWidth)
		})
	}
	if flags.SecondaryEdgesRed {
		g.Each(func(i, j int, p geom.Point) {
			s.line(p, g[a.Next(i)][j], Red, secondaryWidth)
		})
	}
	if flags.PrimaryHandsRed {
		for _, p := range b {
			s.line(origin, p, Red, primaryWidth)
		}
	}
	if flags.PrimaryEdgesBlue {
		for i, p := range a {
			s.line(p, a[a.Next(i)], Blue, primaryWidth)
		}
	}
	if flags.PrimaryEdgesRed {
		for j, p := range b {
			s.line(p, b[b.Next(j)], Red, primaryWidth)
		}
	}
	if flags.PrimaryHandsBlue {
		for _, p := range a {
			s.line(origin, p, Blue, primaryWidth)
		}
	}
	if flags.SecondaryAxesRed {
		for _, p := range b {
			s.dot(p, Red, endRadius)
		}
	}
	if flags.SecondaryHandsRed {
		g.Each(func(_, j int, p geom.Point) {
			s.line(p, b[j], Red, secondaryWidth)
		})
	}
	if flags.SecondaryHandsBlue {
		g.Each(func(i, _ int, p geom.Point) {
			s.line(p, a[i], Blue, secondaryWidth)
		})
	}
	if flags.SecondaryAxesBlue {
		for _, p := range a {
			s.dot(p, Blue, endRadius)
		}
	}
	if flags.Corners {
		g.Each(func(i, j int, p geom.Point) {
			color := Black
			if i == 0 && j == 0 {
				color = Magenta
			}
			s.dot(p, color, cornerRadius)
		})
	}
	if flags.PrimaryAxis {
		s.dot(origin, Black, axisRadius)
	}
	return s
}
