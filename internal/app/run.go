package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/mazewalk/internal/config"
	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
	"github.com/vk/mazewalk/internal/i18n"
	"github.com/vk/mazewalk/internal/loader"
	"github.com/vk/mazewalk/internal/render"
	"github.com/vk/mazewalk/internal/solver"
)

// Failure is returned by Run when the maze could not be searched. Message is
// the localized text shown to the user.
type Failure struct {
	Message string
	Err     error
}

// Error implements the error interface for Failure.
func (f *Failure) Error() string {
	return f.Message + " (" + f.Err.Error() + ")"
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Run executes the main application logic: load, search, report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "maze", a.config.MazePath, "profile", a.config.ProfilePath)

	g, start, err := loader.LoadFile(ctx, a.config.MazePath)
	if err != nil {
		return a.loadFailure(err)
	}
	a.logger.Info("Maze loaded.", "rows", g.Rows(), "cols", g.Cols(), "entrance", start.String())
	a.logger.Debug("Reachability computed.",
		"reachable_cells", g.Reachable(start).Size(),
		"exit_reachable", g.ExitReachable(start))

	term := render.NewTerminal(a.outW, render.TerminalOptions{
		Animate: a.config.Animate,
		Color:   a.config.Color,
	})

	var frames render.Multi
	if a.config.Animate {
		if !render.Fits(a.outW, g) {
			a.logger.Warn("Maze is larger than the terminal; frames will wrap.", "rows", g.Rows(), "cols", g.Cols())
		}
		frames = append(frames, term)
	}
	if a.config.Broadcast.Enabled() {
		b, err := render.NewBroadcaster(ctx, render.BroadcastOptions{
			URL:                a.config.Broadcast.URL,
			Namespace:          a.config.Broadcast.Namespace,
			Event:              a.config.Broadcast.Event,
			RunID:              a.runID,
			InsecureSkipVerify: a.config.Broadcast.InsecureSkipVerify,
		})
		if err != nil {
			return err
		}
		defer b.Close()
		frames = append(frames, b)
	}

	opts := []solver.Option{solver.WithMaxSteps(a.config.MaxSteps)}
	if len(frames) > 0 {
		opts = append(opts, solver.WithOnStep(func(_ grid.Position, snap *grid.Grid) {
			frames.Frame(snap)
		}))
	}
	if a.config.Animate {
		opts = append(opts, solver.WithDelay(a.config.Delay))
	}

	a.logger.Info("Searching for an exit.", "strategy", a.config.Strategy, "animate", a.config.Animate)
	res, err := a.solve(ctx, g, start, opts)
	if err != nil {
		if errors.Is(err, solver.ErrStepLimit) {
			term.Final(g)
			return &Failure{Message: a.catalog.Get(i18n.MsgStepLimit, a.config.MaxSteps), Err: err}
		}
		return fmt.Errorf("search failed: %w", err)
	}
	a.logger.Info("Search finished.", "found", res.Found, "steps", res.Steps, "exit", res.Exit.String())

	term.Final(g)
	if res.Found {
		fmt.Fprintln(a.outW, a.catalog.Get(i18n.MsgExitFound))
	} else {
		fmt.Fprintln(a.outW, a.catalog.Get(i18n.MsgExitNotFound))
	}
	if a.config.ShowPath && res.Found {
		fmt.Fprintln(a.outW, a.catalog.Get(i18n.MsgPath, len(res.Path), formatPath(res.Path)))
	}
	if err := term.Err(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) solve(ctx context.Context, g *grid.Grid, start grid.Position, opts []solver.Option) (*solver.Result, error) {
	if a.config.Strategy == config.StrategyParallel {
		return solver.SolveParallel(ctx, g, start, a.config.Workers, opts...)
	}
	return solver.Solve(ctx, g, start, opts...)
}

func (a *App) loadFailure(err error) error {
	var msg string
	switch {
	case errors.Is(err, loader.ErrEntranceNotFound):
		msg = a.catalog.Get(i18n.MsgEntranceNotFound)
	case errors.Is(err, loader.ErrFormat):
		msg = a.catalog.Get(i18n.MsgMalformed)
	case errors.Is(err, loader.ErrIO):
		msg = a.catalog.Get(i18n.MsgOpenFailed)
	default:
		return err
	}
	a.logger.Debug("Maze could not be loaded.", "error", err)
	return &Failure{Message: msg, Err: err}
}

func formatPath(path []grid.Position) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " -> ")
}
