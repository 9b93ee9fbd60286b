package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
)

// parallelWalker shares one grid between several branch goroutines. Every read
// or write of grid, res and parent happens with mu held.
type parallelWalker struct {
	mu     sync.Mutex
	grid   *grid.Grid
	opts   Options
	res    *Result
	parent map[grid.Position]grid.Position

	found  atomic.Bool
	cancel context.CancelFunc
	group  *errgroup.Group
	ctx    context.Context
}

// SolveParallel is Solve with branches explored concurrently by up to
// workers goroutines. When a cell has several open neighbours the extra
// branches are handed to idle workers; a busy pool means the branch stays on
// the current goroutine's own stack.
//
// Claiming a cell (re-checking it, marking it visited and calling OnStep) is
// serialized, so no cell is entered twice and the step hook never runs
// concurrently with a grid write. The first exit found cancels all other
// branches. Order reflects claim order and is not deterministic across runs.
func SolveParallel(ctx context.Context, g *grid.Grid, start grid.Position, workers int, opts ...Option) (*Result, error) {
	if err := validate(g, start); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(runCtx)
	group.SetLimit(workers)

	pw := &parallelWalker{
		grid:   g,
		opts:   applyOptions(opts),
		res:    &Result{Exit: grid.NoPosition},
		parent: make(map[grid.Position]grid.Position),
		cancel: cancel,
		group:  group,
		ctx:    groupCtx,
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parallel search started.", "start", start.String(), "workers", workers)

	group.Go(func() error {
		return pw.branch(frame{pos: start, parent: grid.NoPosition})
	})
	err := group.Wait()

	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.res.Found {
		pw.res.Path = buildPath(pw.parent, pw.res.Exit)
		logger.Debug("Parallel search finished.", "found", true, "steps", pw.res.Steps)
		return pw.res, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("solver: search interrupted: %w", err)
		}
		logger.Debug("Parallel search aborted.", "steps", pw.res.Steps, "error", err)
		return pw.res, err
	}

	logger.Debug("Parallel search finished.", "found", false, "steps", pw.res.Steps)
	return pw.res, nil
}

// branch runs a depth-first walk from f on the calling goroutine.
func (pw *parallelWalker) branch(f frame) error {
	stack := []frame{f}
	for len(stack) > 0 {
		if pw.found.Load() {
			return nil
		}
		select {
		case <-pw.ctx.Done():
			return pw.ctx.Err()
		default:
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next, done, err := pw.claim(top)
		if done || err != nil {
			return err
		}

		// next is in push order; the last entry is the one a sequential walk
		// would pop first, so it always stays on this goroutine.
		for i, n := range next {
			if i < len(next)-1 && pw.group.TryGo(func() error { return pw.branch(n) }) {
				continue
			}
			stack = append(stack, n)
		}

		if len(next) > 0 {
			if err := pause(pw.ctx, pw.opts.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// claim enters f.pos if it is still open and returns its open neighbours.
// done reports that the whole search is over.
func (pw *parallelWalker) claim(f frame) (next []frame, done bool, err error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.found.Load() {
		return nil, true, nil
	}

	root := f.parent == grid.NoPosition
	if !root && !pw.grid.IsTraversable(f.pos.Row, f.pos.Col) {
		return nil, false, nil
	}
	if !root {
		pw.parent[f.pos] = f.parent
	}

	if pw.grid.At(f.pos) == grid.Exit {
		pw.res.Found = true
		pw.res.Exit = f.pos
		pw.found.Store(true)
		pw.cancel()
		return nil, true, nil
	}

	if pw.opts.MaxSteps > 0 && pw.res.Steps >= pw.opts.MaxSteps {
		return nil, true, fmt.Errorf("%w: %d", ErrStepLimit, pw.opts.MaxSteps)
	}

	pw.grid.Set(f.pos.Row, f.pos.Col, grid.Visited)
	pw.res.Order = append(pw.res.Order, f.pos)
	pw.res.Steps++
	if pw.opts.OnStep != nil {
		pw.opts.OnStep(f.pos, pw.grid)
	}

	for _, n := range pw.grid.Neighbors(f.pos) {
		if pw.grid.IsTraversable(n.Row, n.Col) {
			next = append(next, frame{pos: n, parent: f.pos})
		}
	}
	return next, false, nil
}
