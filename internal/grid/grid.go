package grid

import (
	"strings"
)

// Grid is a rows×cols maze stored in row-major order.
type Grid struct {
	rows, cols int
	cells      []Symbol
}

// New returns a rows×cols grid with every cell set to Wall.
// A zero-sized grid is valid; it simply has no cells.
func New(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	cells := make([]Symbol, rows*cols)
	for i := range cells {
		cells[i] = Wall
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// FromRows builds a grid from equal-length strings, one per row.
// It is mostly useful in tests and examples.
func FromRows(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return New(0, 0)
	}
	width := len([]rune(rows[0]))
	g, err := New(len(rows), width)
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, ErrInvalidDimensions
		}
		for c, ch := range runes {
			g.Set(r, c, Symbol(ch))
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns rows*cols, the upper bound on cells any search can visit.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsTraversable reports whether a search may step onto (row, col): the cell
// must be in bounds and hold Open or Exit. Entrance and Visited are excluded,
// so the start cell stops being a target once the walk leaves it.
func (g *Grid) IsTraversable(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	s := g.cells[g.index(row, col)]
	return s == Open || s == Exit
}

// Get returns the symbol at (row, col). The caller guarantees bounds.
func (g *Grid) Get(row, col int) Symbol {
	return g.cells[g.index(row, col)]
}

// Set stores s at (row, col). The caller guarantees bounds.
func (g *Grid) Set(row, col int, s Symbol) {
	g.cells[g.index(row, col)] = s
}

// At is Get for a Position.
func (g *Grid) At(p Position) Symbol {
	return g.Get(p.Row, p.Col)
}

// Contains is InBounds for a Position.
func (g *Grid) Contains(p Position) bool {
	return g.InBounds(p.Row, p.Col)
}

// Neighbors returns the four orthogonal neighbours of p in Directions order.
// Positions outside the grid are included; callers filter with InBounds or
// IsTraversable.
func (g *Grid) Neighbors(p Position) [4]Position {
	var out [4]Position
	for i, d := range Directions {
		out[i] = p.Step(d)
	}
	return out
}

// Count returns how many cells hold s.
func (g *Grid) Count(s Symbol) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Find returns every position holding s, in row-major order.
func (g *Grid) Find(s Symbol) []Position {
	var out []Position
	for i, c := range g.cells {
		if c == s {
			out = append(out, g.position(i))
		}
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]Symbol, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Row returns the symbols of one row. The returned slice is a copy.
func (g *Grid) Row(row int) []Symbol {
	out := make([]Symbol, g.cols)
	copy(out, g.cells[row*g.cols:(row+1)*g.cols])
	return out
}

// String renders the grid one row per line with cells separated by a single
// space, the same layout the loader accepts.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(rune(g.Get(r, c)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

func (g *Grid) position(idx int) Position {
	return Position{Row: idx / g.cols, Col: idx % g.cols}
}
