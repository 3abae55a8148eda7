package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/handspin/internal/geom"
)

// SVG renders the scene at size x size pixels.
func SVG(s Scene, size int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%s %s %s %s">
<rect x="%s" y="%s" width="%s" height="%s" fill="white"/>
`, size, size, num(-Extent), num(-Extent), num(2*Extent), num(2*Extent),
		num(-Extent), num(-Extent), num(2*Extent), num(2*Extent)))

	for _, it := range s.Items {
		switch {
		case it.Line != nil:
			l := it.Line
			sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>
`, num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y), l.Color, num(l.Width)))
		case it.Dot != nil:
			d := it.Dot
			sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>
`, num(d.At.X), num(d.At.Y), num(d.Radius), d.Color))
		case it.Polyline != nil:
			p := it.Polyline
			sb.WriteString(fmt.Sprintf(`<polyline points="%s" stroke="%s" stroke-width="%s" fill="none"/>
`, points(p.Points), p.Color, num(p.Width)))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes SVG(s, size) to w.
func WriteSVG(w io.Writer, s Scene, size int) error {
	_, err := io.WriteString(w, SVG(s, size))
	return err
}

func points(c geom.Curve) string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num keeps files small; five decimals is well below a pixel at any sane size.
func num(v float64) string {
	s := fmt.Sprintf("%.5f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
