package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/mazewalk/internal/grid"
)

var (
	// ErrNilGrid is returned when Solve is called without a grid.
	ErrNilGrid = errors.New("solver: grid is nil")
	// ErrStartOutOfBounds is returned when the start position is not a grid cell.
	ErrStartOutOfBounds = errors.New("solver: start position out of bounds")
	// ErrStepLimit is returned when MaxSteps cells were visited without finishing.
	ErrStepLimit = errors.New("solver: step limit reached")
)

// StepFunc observes the grid after a cell has been marked visited.
// It must not mutate the grid.
type StepFunc func(pos grid.Position, g *grid.Grid)

// Option configures a search.
type Option func(*Options)

// Options holds the tunables of a search.
type Options struct {
	// OnStep, if non-nil, is invoked after every mutation of the grid.
	OnStep StepFunc

	// Delay is the pause after each step. Zero disables it.
	Delay time.Duration

	// MaxSteps, if positive, bounds the number of visited cells.
	MaxSteps int
}

// DefaultOptions returns Options with no hook, no delay and no step limit.
func DefaultOptions() Options {
	return Options{}
}

// WithOnStep installs fn as the per-step hook.
func WithOnStep(fn StepFunc) Option {
	return func(o *Options) {
		o.OnStep = fn
	}
}

// WithDelay sets the pause between steps. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			d = 0
		}
		o.Delay = d
	}
}

// WithMaxSteps bounds the number of visited cells. Zero means no limit.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxSteps = n
	}
}

// Result is the outcome of a search.
type Result struct {
	// Found reports whether an exit was reached.
	Found bool

	// Exit is the exit cell reached, or grid.NoPosition.
	Exit grid.Position

	// Order lists the cells marked visited, in the order they were entered.
	Order []grid.Position

	// Path runs from the start to Exit through parent links when Found.
	// The exit itself is the last element and is never marked visited.
	Path []grid.Position

	// Steps is the number of cells marked visited (len(Order)).
	Steps int
}

// frame is one frontier entry: a cell to try and the cell that discovered it.
type frame struct {
	pos    grid.Position
	parent grid.Position
}

func validate(g *grid.Grid, start grid.Position) error {
	if g == nil {
		return ErrNilGrid
	}
	if !g.Contains(start) {
		return fmt.Errorf("%w: %s in a %dx%d grid", ErrStartOutOfBounds, start, g.Rows(), g.Cols())
	}
	return nil
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// pause sleeps for d unless ctx is done first.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// buildPath follows parent links back from the exit and returns the chain in
// start-to-exit order.
func buildPath(parent map[grid.Position]grid.Position, exit grid.Position) []grid.Position {
	var path []grid.Position
	at := exit
	for {
		path = append(path, at)
		p, ok := parent[at]
		if !ok {
			break
		}
		at = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
