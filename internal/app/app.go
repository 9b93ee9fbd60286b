package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/mazewalk/internal/i18n"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	catalog *i18n.Catalog
	runID   string
}

// NewApp is the constructor for the main application. Grids and result
// messages go to outW; logs go to logW through the App's own logger.
// cfg is expected to have passed NewConfig.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	catalog, err := i18n.New(cfg.Lang)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		catalog: catalog,
		runID:   runID,
	}, nil
}

// RunID identifies this run in logs and broadcast frames.
func (a *App) RunID() string {
	return a.runID
}

// Catalog returns the message catalog selected by the configured language.
func (a *App) Catalog() *i18n.Catalog {
	return a.catalog
}
