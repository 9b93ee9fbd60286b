package render

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/vk/mazewalk/internal/grid"
)

// clearScreen moves the cursor home and clears the display.
const clearScreen = "\033[H\033[2J"

// TerminalOptions configures a Terminal renderer.
type TerminalOptions struct {
	// Animate precedes every frame with a screen clear when the writer is a
	// terminal. On other writers frames are separated by a blank line.
	Animate bool
	// Color paints symbols with ANSI colours.
	Color bool
}

// Terminal writes grid dumps, one row per line with cells separated by a
// single space.
type Terminal struct {
	w      io.Writer
	opts   TerminalOptions
	clear  bool
	frames int
	err    error
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer, opts TerminalOptions) *Terminal {
	return &Terminal{
		w:     w,
		opts:  opts,
		clear: opts.Animate && IsTerminal(w),
	}
}

// Frame writes one snapshot. After the first write error all further output
// is dropped; the error is available from Err.
func (t *Terminal) Frame(g *grid.Grid) {
	if t.err != nil {
		return
	}
	var sb strings.Builder
	switch {
	case t.clear:
		sb.WriteString(clearScreen)
	case t.frames > 0:
		sb.WriteByte('\n')
	}
	t.writeGrid(&sb, g)
	t.frames++
	_, t.err = io.WriteString(t.w, sb.String())
}

// Final writes the closing snapshot without a separator. On an animated
// terminal it replaces the last frame.
func (t *Terminal) Final(g *grid.Grid) {
	if t.err != nil {
		return
	}
	var sb strings.Builder
	if t.clear {
		sb.WriteString(clearScreen)
	}
	t.writeGrid(&sb, g)
	_, t.err = io.WriteString(t.w, sb.String())
}

// Frames returns how many frames were written.
func (t *Terminal) Frames() int { return t.frames }

// Err returns the first write error, if any.
func (t *Terminal) Err() error { return t.err }

func (t *Terminal) writeGrid(sb *strings.Builder, g *grid.Grid) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t.symbol(g.Get(r, c)))
		}
		sb.WriteByte('\n')
	}
}

func (t *Terminal) symbol(s grid.Symbol) string {
	if !t.opts.Color {
		return s.String()
	}
	switch s {
	case grid.Visited:
		return color.Green.Sprint(s.String())
	case grid.Exit:
		return color.Red.Sprint(s.String())
	case grid.Entrance:
		return color.Yellow.Sprint(s.String())
	case grid.Open:
		return s.String()
	}
	return color.Gray.Sprint(s.String())
}

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Size returns the width and height of the terminal behind w.
// ok is false when w is not a terminal or the size is unknown.
func Size(w io.Writer) (width, height int, ok bool) {
	f, isFd := w.(fder)
	if !isFd {
		return 0, 0, false
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

// Fits reports whether g can be drawn on the terminal behind w without
// wrapping. Non-terminals always fit.
func Fits(w io.Writer, g *grid.Grid) bool {
	width, height, ok := Size(w)
	if !ok {
		return true
	}
	return 2*g.Cols()-1 <= width && g.Rows() <= height
}
