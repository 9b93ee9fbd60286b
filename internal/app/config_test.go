package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/mazewalk/internal/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := Config{MazePath: "maze.txt", Settings: config.Defaults()}
	in.Strategy = "DFS"

	// --- Act ---
	cfg, err := NewConfig(in)

	// --- Assert ---
	require.NoError(t, err)
	want := in
	want.Strategy = config.StrategyDFS
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Errorf("NewConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConfig_RequiresMazePath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{Settings: config.Defaults()})
	require.ErrorContains(t, err, "MazePath is a required configuration field")
}

func TestNewConfig_InvalidSettings(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	s.Workers = 0
	_, err := NewConfig(Config{MazePath: "maze.txt", Settings: s})
	require.ErrorIs(t, err, config.ErrInvalidSetting)
}
