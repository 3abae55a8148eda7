package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/san-kum/handspin/internal/geom"
)

var hexColors = map[string]string{
	Blue:      "#0000ff",
	Red:       "#ff0000",
	Magenta:   "#ff00ff",
	Black:     "#000000",
	LightGrey: "#d3d3d3",
}

// PNG draws the scene on a size x size context. The caller owns the returned
// context and must Close it.
func PNG(s Scene, size int) (*gg.Context, error) {
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid size %d", size)
	}
	dc := gg.NewContext(size, size)
	dc.ClearWithColor(gg.White)

	scale := float64(size) / (2 * Extent)
	px := func(p geom.Point) (float64, float64) {
		return (p.X + Extent) * scale, (p.Y + Extent) * scale
	}

	for _, it := range s.Items {
		var err error
		switch {
		case it.Line != nil:
			l := it.Line
			dc.SetHexColor(hexColors[l.Color])
			dc.SetLineWidth(l.Width * scale)
			x1, y1 := px(l.From)
			x2, y2 := px(l.To)
			dc.DrawLine(x1, y1, x2, y2)
			err = dc.Stroke()
		case it.Dot != nil:
			d := it.Dot
			dc.SetHexColor(hexColors[d.Color])
			x, y := px(d.At)
			dc.DrawCircle(x, y, d.Radius*scale)
			err = dc.Fill()
		case it.Polyline != nil:
			p := it.Polyline
			if len(p.Points) < 2 {
				continue
			}
			dc.SetHexColor(hexColors[p.Color])
			dc.SetLineWidth(p.Width * scale)
			dc.MoveTo(px(p.Points[0]))
			for _, q := range p.Points[1:] {
				dc.LineTo(px(q))
			}
			err = dc.Stroke()
		}
		if err != nil {
			dc.Close()
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	return dc, nil
}

// WritePNG encodes the scene as PNG to w.
func WritePNG(w io.Writer, s Scene, size int) error {
	dc, err := PNG(s, size)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
