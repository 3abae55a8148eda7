package geom

// Grid holds one corner per pair of hands: Grid[i][j] = A[i] + B[j].
type Grid [][]Point

// Compose adds every hand of a to every hand of b.
func Compose(a, b Family) Grid {
	g := make(Grid, len(a))
	for i, pa := range a {
		row := make([]Point, len(b))
		for j, pb := range b {
			row[j] = pa.Add(pb)
		}
		g[i] = row
	}
	return g
}

// Primary returns the corner at (0, 0), the one renderers highlight.
func (g Grid) Primary() (Point, bool) {
	if len(g) == 0 || len(g[0]) == 0 {
		return Point{}, false
	}
	return g[0][0], true
}

// Rows and Cols report the grid shape.
func (g Grid) Rows() int { return len(g) }

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Each visits the corners row by row.
func (g Grid) Each(fn func(i, j int, p Point)) {
	for i, row := range g {
		for j, p := range row {
			fn(i, j, p)
		}
	}
}

// Len is the number of corners.
func (g Grid) Len() int {
	return g.Rows() * g.Cols()
}
