package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille pixel grid with one pen color per cell. A cell takes
// the color of the last pixel set in it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]lipgloss.Color
	pen           lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Colors = make([][]lipgloss.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Pixels returns the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) SetPen(col lipgloss.Color) { c.pen = col }

// Set lights the sub-pixel (x, y); out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][col] = c.pen
}

// Lit reports whether the sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle sets every sub-pixel within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// String renders the canvas with colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank || c.Colors[i][j] == "" {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(c.Colors[i][j]).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Plain renders the canvas without colors.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// DrawScene paints s onto the canvas, fitting the model square into the
// largest centred square of sub-pixels.
func (c *Canvas) DrawScene(s render.Scene, th Theme) {
	pw, ph := c.Pixels()
	side := min(pw, ph)
	ox, oy := (pw-side)/2, (ph-side)/2
	scale := float64(side-1) / (2 * render.Extent)

	// The model y axis points down, like the canvas rows.
	px := func(p geom.Point) (int, int) {
		return ox + int(math.Round((p.X+render.Extent)*scale)),
			oy + int(math.Round((p.Y+render.Extent)*scale))
	}

	for _, it := range s.Items {
		switch {
		case it.Line != nil:
			c.SetPen(th.Color(it.Line.Color))
			x0, y0 := px(it.Line.From)
			x1, y1 := px(it.Line.To)
			c.DrawLine(x0, y0, x1, y1)
		case it.Dot != nil:
			c.SetPen(th.Color(it.Dot.Color))
			x, y := px(it.Dot.At)
			c.FillCircle(x, y, max(0, int(it.Dot.Radius*scale)))
		case it.Polyline != nil:
			c.SetPen(th.Color(it.Polyline.Color))
			pts := it.Polyline.Points
			for i := 1; i < len(pts); i++ {
				x0, y0 := px(pts[i-1])
				x1, y1 := px(pts[i])
				c.DrawLine(x0, y0, x1, y1)
			}
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
