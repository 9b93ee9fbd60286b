package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/mazewalk/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteMaze writes content to a maze file in a fresh temp dir and returns its path.
func WriteMaze(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up maze file")
	return path
}

// SetupAppTest creates a new app instance for system testing. settings may
// adjust the defaults before validation.
func SetupAppTest(t *testing.T, mazePath string, settings func(*config.Settings)) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	s := config.Defaults()
	s.LogLevel = "debug"
	if settings != nil {
		settings(&s)
	}
	cfg, err := NewConfig(Config{MazePath: mazePath, Settings: s})
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	testApp, err := NewApp(out, logs, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("MAZEWALK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
