package solver

import (
	"context"
	"fmt"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
)

// walker holds the state of one sequential search. Nothing here outlives the
// Solve call that created it.
type walker struct {
	ctx      context.Context
	grid     *grid.Grid
	opts     Options
	res      *Result
	parent   map[grid.Position]grid.Position
	frontier []frame
}

// Solve searches g for an exit starting at start and reports whether one was
// reached. The grid is modified in place: every entered cell except the exit
// is overwritten with grid.Visited.
//
// If start itself holds an exit, Solve returns Found without marking anything.
// On cancellation or step-limit errors the partial Result is returned with
// the error.
func Solve(ctx context.Context, g *grid.Grid, start grid.Position, opts ...Option) (*Result, error) {
	if err := validate(g, start); err != nil {
		return nil, err
	}

	w := &walker{
		ctx:    ctx,
		grid:   g,
		opts:   applyOptions(opts),
		res:    &Result{Exit: grid.NoPosition},
		parent: make(map[grid.Position]grid.Position),
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Depth-first search started.", "start", start.String(), "rows", g.Rows(), "cols", g.Cols())

	if err := w.walk(start); err != nil {
		logger.Debug("Depth-first search aborted.", "steps", w.res.Steps, "error", err)
		return w.res, err
	}
	if w.res.Found {
		w.res.Path = buildPath(w.parent, w.res.Exit)
	}

	logger.Debug("Depth-first search finished.", "found", w.res.Found, "steps", w.res.Steps)
	return w.res, nil
}

func (w *walker) walk(start grid.Position) error {
	done, err := w.enter(frame{pos: start, parent: grid.NoPosition})
	if done || err != nil {
		return err
	}

	for len(w.frontier) > 0 {
		select {
		case <-w.ctx.Done():
			return fmt.Errorf("solver: search interrupted: %w", w.ctx.Err())
		default:
		}

		top := w.frontier[len(w.frontier)-1]
		w.frontier = w.frontier[:len(w.frontier)-1]

		// A cell may be pushed by two different neighbours; the copy popped
		// second is stale once the first has been entered.
		if !w.grid.IsTraversable(top.pos.Row, top.pos.Col) {
			continue
		}

		done, err := w.enter(top)
		if done || err != nil {
			return err
		}
	}
	return nil
}

// enter steps onto f.pos and reports whether the search is over.
func (w *walker) enter(f frame) (bool, error) {
	if f.parent != grid.NoPosition {
		w.parent[f.pos] = f.parent
	}

	isExit := w.grid.At(f.pos) == grid.Exit
	if isExit {
		w.res.Found = true
		w.res.Exit = f.pos
		return true, nil
	}

	if w.opts.MaxSteps > 0 && w.res.Steps >= w.opts.MaxSteps {
		return true, fmt.Errorf("%w: %d", ErrStepLimit, w.opts.MaxSteps)
	}

	w.grid.Set(f.pos.Row, f.pos.Col, grid.Visited)
	w.res.Order = append(w.res.Order, f.pos)
	w.res.Steps++
	if w.opts.OnStep != nil {
		w.opts.OnStep(f.pos, w.grid)
	}

	for _, n := range w.grid.Neighbors(f.pos) {
		if w.grid.IsTraversable(n.Row, n.Col) {
			w.frontier = append(w.frontier, frame{pos: n, parent: f.pos})
		}
	}

	if err := pause(w.ctx, w.opts.Delay); err != nil {
		return true, fmt.Errorf("solver: search interrupted: %w", err)
	}
	return false, nil
}
