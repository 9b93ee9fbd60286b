package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/mazewalk/internal/app"
	"github.com/vk/mazewalk/internal/config"
)

// noEnv keeps tests independent of a .env file in the package directory.
var noEnv = Options{}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	exitErr, ok := err.(*ExitError)
	require.True(t, ok, "expected *ExitError, got %T: %v", err, err)
	require.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"maze.txt"}, out, noEnv)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	want := app.Config{MazePath: "maze.txt", Settings: config.Defaults()}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, out.String())
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{
		"--animate", "--delay", "10ms", "--color",
		"--strategy", "parallel", "--workers", "3", "--max-steps", "99",
		"--log-level", "debug", "--log-format", "json",
		"--broadcast-url", "http://localhost:3000/socket.io/", "--broadcast-namespace", "/mazes",
		"--lang", "pt-BR", "--show-path",
		"maze.txt",
	}

	// --- Act ---
	cfg, _, err := Parse(args, &bytes.Buffer{}, noEnv)

	// --- Assert ---
	require.NoError(t, err)
	want := config.Settings{
		Animate:   true,
		Delay:     10 * time.Millisecond,
		Color:     true,
		Strategy:  config.StrategyParallel,
		Workers:   3,
		MaxSteps:  99,
		LogLevel:  "debug",
		LogFormat: "json",
		Lang:      "pt_BR",
		ShowPath:  true,
		Broadcast: config.Broadcast{
			URL:       "http://localhost:3000/socket.io/",
			Namespace: "/mazes",
			Event:     "frame",
		},
	}
	if diff := cmp.Diff(want, cfg.Settings); diff != "" {
		t.Errorf("Parse() settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out, noEnv)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
	require.Contains(t, out.String(), "-strategy")
}

func TestParse_MissingMazeFile(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse(nil, out, noEnv)

	exitErr := requireExitCode(t, err, ExitFailure)
	require.Equal(t, "Usage: mazewalk <maze_file>", exitErr.Message)
	require.Contains(t, out.String(), "MAZE_FILE")
}

func TestParse_MissingMazeFileLocalized(t *testing.T) {
	t.Parallel()

	_, _, err := Parse([]string{"--lang", "pt_BR"}, &bytes.Buffer{}, noEnv)

	exitErr := requireExitCode(t, err, ExitFailure)
	require.Equal(t, "Uso: mazewalk <arquivo_labirinto>", exitErr.Message)
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		args    []string
		message string
	}{
		"unknown flag":       {[]string{"--nope", "maze.txt"}, "flag provided but not defined: -nope"},
		"non-numeric worker": {[]string{"--workers", "many", "maze.txt"}, "invalid value"},
		"bad strategy":       {[]string{"--strategy", "bfs", "maze.txt"}, "strategy must be"},
		"bad log format":     {[]string{"--log-format", "xml", "maze.txt"}, "log-format must be"},
		"bad language":       {[]string{"--lang", "fr", "maze.txt"}, "unknown language"},
		"zero workers":       {[]string{"--workers", "0", "maze.txt"}, "workers must be at least 1"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{}, noEnv)

			// --- Assert ---
			require.Nil(t, cfg)
			require.False(t, shouldExit)
			exitErr := requireExitCode(t, err, ExitUsage)
			require.Contains(t, exitErr.Message, tc.message)
		})
	}
}

func TestParse_ProfileLayering(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	envFile := writeFile(t, ".env", "MAZEWALK_WORKERS=7\nMAZEWALK_STRATEGY=parallel\nMAZEWALK_MAX_STEPS=5\n")
	profile := writeFile(t, "run.hcl", `
strategy  = "dfs"
max_steps = 50
show_path = true
`)
	args := []string{"--config", profile, "--max-steps", "500", "maze.txt"}

	// --- Act ---
	cfg, _, err := Parse(args, &bytes.Buffer{}, Options{EnvFiles: []string{envFile}})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, profile, cfg.ProfilePath)
	require.Equal(t, 7, cfg.Workers, "from .env")
	require.Equal(t, config.StrategyDFS, cfg.Strategy, "profile overrides .env")
	require.True(t, cfg.ShowPath, "from profile")
	require.Equal(t, 500, cfg.MaxSteps, "flag overrides profile")
}

func TestParse_ProfileFromEnvFile(t *testing.T) {
	t.Parallel()

	profile := writeFile(t, "run.hcl", `lang = "pt_BR"`)
	envFile := writeFile(t, ".env", "MAZEWALK_CONFIG="+profile+"\n")

	cfg, _, err := Parse([]string{"maze.txt"}, &bytes.Buffer{}, Options{EnvFiles: []string{envFile}})

	require.NoError(t, err)
	require.Equal(t, profile, cfg.ProfilePath)
	require.Equal(t, "pt_BR", cfg.Lang)
}

func TestParse_ProfileErrors(t *testing.T) {
	t.Parallel()

	testCases := map[string]string{
		"missing file":  filepath.Join(t.TempDir(), "missing.hcl"),
		"syntax error":  writeFile(t, "syntax.hcl", `animate = `),
		"bad delay":     writeFile(t, "delay.hcl", `delay = "soon"`),
		"bad strategy":  writeFile(t, "strategy.hcl", `strategy = "bfs"`),
		"unknown field": writeFile(t, "unknown.hcl", `speed = 11`),
	}

	for name, path := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse([]string{"--config", path, "maze.txt"}, &bytes.Buffer{}, noEnv)

			requireExitCode(t, err, ExitFailure)
		})
	}
}

func TestParse_BadEnvValue(t *testing.T) {
	t.Parallel()

	envFile := writeFile(t, ".env", "MAZEWALK_ANIMATE=sometimes\n")

	_, _, err := Parse([]string{"maze.txt"}, &bytes.Buffer{}, Options{EnvFiles: []string{envFile}})

	exitErr := requireExitCode(t, err, ExitFailure)
	require.Contains(t, exitErr.Message, "MAZEWALK_ANIMATE")
}
