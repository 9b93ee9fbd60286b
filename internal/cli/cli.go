package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/mazewalk/internal/app"
	"github.com/vk/mazewalk/internal/config"
	"github.com/vk/mazewalk/internal/i18n"
)

// ProgramName is used in usage text.
const ProgramName = "mazewalk"

// Exit codes reported through ExitError.
const (
	ExitFailure = 1 // bad input: missing maze, unreadable file, invalid profile
	ExitUsage   = 2 // unknown flag or invalid flag value
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options controls where Parse looks for environment defaults.
type Options struct {
	// EnvFiles are .env files read for MAZEWALK_* defaults. Missing files are
	// skipped.
	EnvFiles []string
}

// DefaultOptions reads ".env" from the working directory.
func DefaultOptions() Options {
	return Options{EnvFiles: []string{".env"}}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, opts Options) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults := config.Defaults()

	flagSet := flag.NewFlagSet(ProgramName, flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
mazewalk - Finds a way out of a text maze with a depth-first search.

Usage:
  mazewalk [options] MAZE_FILE

Arguments:
  MAZE_FILE
    Text file: "rows cols" followed by rows*cols cells.
    x open, e entrance, s exit, anything else is a wall.

Settings are read from built-in defaults, then .env and MAZEWALK_*
environment variables, then the run profile, then these flags.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL run profile. Defaults to $"+config.EnvConfig+".")
	animateFlag := flagSet.Bool("animate", defaults.Animate, "Redraw the maze after every step.")
	delayFlag := flagSet.Duration("delay", defaults.Delay, "Pause between animation frames.")
	colorFlag := flagSet.Bool("color", defaults.Color, "Colour the maze symbols.")
	strategyFlag := flagSet.String("strategy", defaults.Strategy, "Search strategy. Options: 'dfs' or 'parallel'.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of concurrent branches for the parallel strategy.")
	maxStepsFlag := flagSet.Int("max-steps", defaults.MaxSteps, "Stop after visiting this many cells. 0 is unlimited.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	broadcastURLFlag := flagSet.String("broadcast-url", defaults.Broadcast.URL, "socket.io server to stream frames to. Empty is disabled.")
	broadcastNSFlag := flagSet.String("broadcast-namespace", defaults.Broadcast.Namespace, "socket.io namespace for streamed frames.")
	langFlag := flagSet.String("lang", defaults.Lang, "Language of the result message. Options: 'en', 'pt_BR'.")
	showPathFlag := flagSet.Bool("show-path", defaults.ShowPath, "Print the entrance-to-exit path when an exit is found.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Lower layers: environment, then the run profile.
	env, err := config.Environ(opts.EnvFiles...)
	if err != nil {
		return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	settings := defaults
	if err := settings.ApplyEnv(env); err != nil {
		return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
	}

	profilePath := *configFlag
	if profilePath == "" {
		profilePath = env[config.EnvConfig]
	}
	if profilePath != "" {
		profile, err := config.LoadProfile(context.Background(), profilePath, env)
		if err != nil {
			return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		if err := settings.ApplyProfile(profile); err != nil {
			return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
		}
		slog.Debug("Run profile applied.", "path", profilePath)
	}
	if err := settings.Validate(); err != nil {
		return nil, false, &ExitError{Code: ExitFailure, Message: err.Error()}
	}

	// Explicit flags win over everything else.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "animate":
			settings.Animate = *animateFlag
		case "delay":
			settings.Delay = *delayFlag
		case "color":
			settings.Color = *colorFlag
		case "strategy":
			settings.Strategy = *strategyFlag
		case "workers":
			settings.Workers = *workersFlag
		case "max-steps":
			settings.MaxSteps = *maxStepsFlag
		case "log-level":
			settings.LogLevel = *logLevelFlag
		case "log-format":
			settings.LogFormat = *logFormatFlag
		case "broadcast-url":
			settings.Broadcast.URL = *broadcastURLFlag
		case "broadcast-namespace":
			settings.Broadcast.Namespace = *broadcastNSFlag
		case "lang":
			settings.Lang = *langFlag
		case "show-path":
			settings.ShowPath = *showPathFlag
		}
	})

	path := flagSet.Arg(0)
	slog.Debug("Maze path determined.", "path", path)
	if path == "" {
		slog.Debug("No maze path provided, printing usage and exiting.")
		flagSet.Usage()
		catalog, _ := i18n.New(settings.Lang)
		return nil, false, &ExitError{Code: ExitFailure, Message: catalog.Get(i18n.MsgUsage, ProgramName)}
	}
	if flagSet.NArg() > 1 {
		slog.Warn("Ignoring extra arguments.", "args", flagSet.Args()[1:])
	}

	cfg, err := app.NewConfig(app.Config{
		MazePath:    path,
		ProfilePath: profilePath,
		Settings:    settings,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
