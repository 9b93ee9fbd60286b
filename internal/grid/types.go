package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned by New for negative row or column counts.
var ErrInvalidDimensions = errors.New("grid: dimensions must not be negative")

// Symbol is the content of a single maze cell.
type Symbol rune

const (
	Open     Symbol = 'x'
	Entrance Symbol = 'e'
	Exit     Symbol = 's'
	Visited  Symbol = '.'
	// Wall is the canonical wall symbol. Any symbol not listed above is
	// treated as a wall too.
	Wall Symbol = '#'
)

// IsWall reports whether s blocks movement for every search.
func (s Symbol) IsWall() bool {
	switch s {
	case Open, Entrance, Exit, Visited:
		return false
	}
	return true
}

func (s Symbol) String() string {
	return string(s)
}

// Position identifies a cell by row and column.
type Position struct {
	Row int
	Col int
}

// NoPosition is the sentinel for "no such cell".
var NoPosition = Position{Row: -1, Col: -1}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is one of the four orthogonal moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists the moves in the order the solver examines them.
var Directions = [4]Direction{Up, Down, Left, Right}

var offsets = [4]Position{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Step returns the position one move away from p in direction d.
func (p Position) Step(d Direction) Position {
	o := offsets[d]
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}
