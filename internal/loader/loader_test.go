package loader

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mazewalk/internal/ctxlog"
	"github.com/vk/mazewalk/internal/grid"
)

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestParse_TwoByTwo(t *testing.T) {
	g, start, err := Parse(context.Background(), "2 2\nx x\ne s")
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	assert.Equal(t, grid.Position{Row: 1, Col: 0}, start)
	assert.Equal(t, grid.Exit, g.Get(1, 1))
	assert.Equal(t, grid.Open, g.Get(0, 0))
}

func TestParse_ThreeByThree(t *testing.T) {
	g, start, err := Parse(context.Background(), "3 3\nx x x\nx e x\nx x s\n")
	require.NoError(t, err)
	assert.Equal(t, grid.Position{Row: 1, Col: 1}, start)
	assert.Equal(t, "x x x\nx e x\nx x s\n", g.String())
}

func TestParse_UnseparatedCells(t *testing.T) {
	g, start, err := Parse(context.Background(), "2 3\nxex\n#s#")
	require.NoError(t, err)
	assert.Equal(t, grid.Position{Row: 0, Col: 1}, start)
	assert.Equal(t, grid.Exit, g.Get(1, 1))
	assert.Equal(t, grid.Symbol('#'), g.Get(1, 2))
}

func TestParse_RowBreaksIgnored(t *testing.T) {
	// Cells are read in row-major order regardless of line layout.
	g, _, err := Parse(context.Background(), "2 2 x x e s")
	require.NoError(t, err)
	assert.Equal(t, grid.Entrance, g.Get(1, 0))
}

func TestParse_MissingHeader(t *testing.T) {
	for name, text := range map[string]string{
		"empty":       "",
		"only rows":   "3",
		"non numeric": "three 3\nxxx",
		"bad cols":    "3 x\nxxx",
		"negative":    "-1 2",
	} {
		t.Run(name, func(t *testing.T) {
			g, pos, err := Parse(context.Background(), text)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Nil(t, g)
			assert.Equal(t, grid.NoPosition, pos)
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	_, _, err := Parse(context.Background(), "100000 100000")
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorContains(t, err, "exceeds")
}

func TestParse_InsufficientCells(t *testing.T) {
	g, pos, err := Parse(context.Background(), "2 2\nx e\ns")
	assert.ErrorIs(t, err, ErrFormat)
	assert.ErrorContains(t, err, "expected 4 cells (2x2), got 3")
	assert.Nil(t, g)
	assert.Equal(t, grid.NoPosition, pos)
}

func TestParse_EntranceNotFound(t *testing.T) {
	g, pos, err := Parse(context.Background(), "1 2\nx s")
	assert.ErrorIs(t, err, ErrEntranceNotFound)
	assert.Nil(t, g)
	assert.Equal(t, grid.NoPosition, pos)
}

func TestParse_ZeroSizedHasNoEntrance(t *testing.T) {
	_, _, err := Parse(context.Background(), "0 0")
	assert.ErrorIs(t, err, ErrEntranceNotFound)
}

func TestParse_LastEntranceWins(t *testing.T) {
	buf := &bytes.Buffer{}
	_, start, err := Parse(testContext(buf), "2 2\ne x\ne s")
	require.NoError(t, err)
	assert.Equal(t, grid.Position{Row: 1, Col: 0}, start)
	assert.Contains(t, buf.String(), "more than one entrance")
	assert.Contains(t, buf.String(), "count=2")
}

func TestParse_NoExitWarns(t *testing.T) {
	buf := &bytes.Buffer{}
	_, _, err := Parse(testContext(buf), "1 2\ne x")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no exit")
}

func TestParse_TrailingSymbolsIgnored(t *testing.T) {
	buf := &bytes.Buffer{}
	g, _, err := Parse(testContext(buf), "1 2\ne s x x")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Size())
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoad_ReadError(t *testing.T) {
	r := iotest.ErrReader(errors.New("disk on fire"))
	_, pos, err := Load(context.Background(), r)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorContains(t, err, "disk on fire")
	assert.Equal(t, grid.NoPosition, pos)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte("2 2\nx x\ne s\n"), 0600))

	// --- Act ---
	g, start, err := LoadFile(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, grid.Position{Row: 1, Col: 0}, start)
	assert.Equal(t, 4, g.Size())
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, pos, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, grid.NoPosition, pos)
}
