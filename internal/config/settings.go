package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vk/mazewalk/internal/i18n"
)

// Search strategies.
const (
	StrategyDFS      = "dfs"
	StrategyParallel = "parallel"
)

// DefaultDelay is the pause between animation frames.
const DefaultDelay = 50 * time.Millisecond

// ErrInvalidSetting is returned by Validate.
var ErrInvalidSetting = errors.New("config: invalid setting")

// Settings is the fully resolved configuration of a run, minus the maze path.
type Settings struct {
	Animate   bool
	Delay     time.Duration
	Color     bool
	Strategy  string
	Workers   int
	MaxSteps  int // 0 is unlimited
	LogLevel  string
	LogFormat string
	Lang      string
	ShowPath  bool
	Broadcast Broadcast
}

// Broadcast configures the optional socket.io frame stream. An empty URL
// disables it.
type Broadcast struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
}

// Enabled reports whether a broadcast URL is configured.
func (b Broadcast) Enabled() bool {
	return b.URL != ""
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Delay:     DefaultDelay,
		Strategy:  StrategyDFS,
		Workers:   4,
		LogLevel:  "info",
		LogFormat: "text",
		Lang:      i18n.English,
		Broadcast: Broadcast{
			Namespace: "/",
			Event:     "frame",
		},
	}
}

// Validate checks every field and normalizes the case of enumerations.
func (s *Settings) Validate() error {
	s.Strategy = strings.ToLower(s.Strategy)
	switch s.Strategy {
	case StrategyDFS, StrategyParallel:
	default:
		return fmt.Errorf("%w: strategy must be %q or %q, got %q", ErrInvalidSetting, StrategyDFS, StrategyParallel, s.Strategy)
	}

	s.LogLevel = strings.ToLower(s.LogLevel)
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log-level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalidSetting, s.LogLevel)
	}

	s.LogFormat = strings.ToLower(s.LogFormat)
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("%w: log-format must be 'text' or 'json', got %q", ErrInvalidSetting, s.LogFormat)
	}

	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidSetting, s.Workers)
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("%w: max-steps must not be negative, got %d", ErrInvalidSetting, s.MaxSteps)
	}
	if s.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %s", ErrInvalidSetting, s.Delay)
	}

	catalog, err := i18n.New(s.Lang)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	s.Lang = catalog.Lang()
	return nil
}
