// Package loader parses the plain-text maze format into a grid.Grid.
//
// Format:
//
//	rows cols
//	c c c ...
//
// The header is two integers. It is followed by rows*cols cell symbols in
// row-major order. Whitespace between symbols is optional: every
// non-whitespace character is one cell, so "x x x" and "xxx" read the same
// three cells. Anything after the last expected cell is ignored.
//
// Errors:
//
//   - ErrIO               the source could not be opened or read.
//   - ErrFormat           header missing, non-numeric, negative, too large,
//     or fewer cells than the header promises.
//   - ErrEntranceNotFound no 'e' cell in the grid.
//
// When more than one entrance is present the last one in row-major order is
// used and a warning is logged.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
)

// MaxCells bounds rows*cols so a corrupt header cannot make the loader
// allocate an absurd grid.
const MaxCells = 1 << 24

const maxTokenSize = 1 << 20

var (
	// ErrIO indicates the maze source could not be opened or read.
	ErrIO = errors.New("loader: cannot read maze")
	// ErrFormat indicates a malformed header or missing cells.
	ErrFormat = errors.New("loader: malformed maze")
	// ErrEntranceNotFound indicates the grid has no entrance cell.
	ErrEntranceNotFound = errors.New("loader: entrance not found")
)

// LoadFile opens path and parses it with Load.
func LoadFile(ctx context.Context, path string) (*grid.Grid, grid.Position, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Opening maze file.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, grid.NoPosition, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	return Load(ctx, f)
}

// Parse is Load over an in-memory string.
func Parse(ctx context.Context, text string) (*grid.Grid, grid.Position, error) {
	return Load(ctx, strings.NewReader(text))
}

// Load reads a maze from r and returns the grid together with the entrance
// position. On error the grid is nil and the position is grid.NoPosition.
func Load(ctx context.Context, r io.Reader) (*grid.Grid, grid.Position, error) {
	logger := ctxlog.FromContext(ctx)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxTokenSize)
	sc.Split(bufio.ScanWords)

	rows, cols, err := readHeader(sc)
	if err != nil {
		return nil, grid.NoPosition, err
	}
	logger.Debug("Maze header parsed.", "rows", rows, "cols", cols)

	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, grid.NoPosition, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	entrance := grid.NoPosition
	entrances := 0
	total := rows * cols
	read := 0
	extra := 0

	for sc.Scan() {
		for _, ch := range sc.Text() {
			if read == total {
				extra++
				continue
			}
			row, col := read/cols, read%cols
			sym := grid.Symbol(ch)
			g.Set(row, col, sym)
			if sym == grid.Entrance {
				entrance = grid.Position{Row: row, Col: col}
				entrances++
			}
			read++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, grid.NoPosition, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if read < total {
		return nil, grid.NoPosition, fmt.Errorf("%w: expected %d cells (%dx%d), got %d", ErrFormat, total, rows, cols, read)
	}
	if extra > 0 {
		logger.Debug("Ignoring trailing symbols after the last cell.", "count", extra)
	}
	if entrances == 0 {
		return nil, grid.NoPosition, ErrEntranceNotFound
	}
	if entrances > 1 {
		logger.Warn("Maze has more than one entrance; using the last one in row-major order.",
			"count", entrances, "entrance", entrance.String())
	}
	if g.Count(grid.Exit) == 0 {
		logger.Warn("Maze has no exit cell.")
	}

	logger.Debug("Maze loaded.", "rows", rows, "cols", cols, "entrance", entrance.String())
	return g, entrance, nil
}

func readHeader(sc *bufio.Scanner) (rows, cols int, err error) {
	var dims [2]int
	names := [2]string{"rows", "cols"}
	for i := range dims {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, 0, fmt.Errorf("%w: %w", ErrIO, err)
			}
			return 0, 0, fmt.Errorf("%w: header must contain the number of rows and columns", ErrFormat)
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s %q is not an integer", ErrFormat, names[i], sc.Text())
		}
		if n < 0 {
			return 0, 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrFormat, names[i], n)
		}
		dims[i] = n
	}
	rows, cols = dims[0], dims[1]
	if rows != 0 && cols > MaxCells/rows {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrFormat, rows, cols, MaxCells)
	}
	return rows, cols, nil
}
