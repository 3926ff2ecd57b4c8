package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/formtree/internal/config"
	"github.com/specialistvlad/formtree/internal/ctxlog"
	"github.com/specialistvlad/formtree/internal/engine"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	project *config.Project
	engine  *engine.Engine
	input   engine.Input
}

// NewApp is the constructor for the main application. It loads the project
// through loader, reads its layout set, data and texts, and builds the
// engine. Results are written to outW and logs to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	project, err := loader.Load(ctx, appConfig.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	logger.Debug("Project loaded and translated into unified model.", "path", project.Path)

	a := &App{outW: outW, logger: logger, project: project}
	set, err := a.loadLayout(ctx)
	if err != nil {
		return nil, err
	}
	if a.input, err = a.loadInput(ctx); err != nil {
		return nil, err
	}

	a.engine = engine.New(ctx, set)
	logger.Info("Project ready.", "pages", len(set.Pages), "components", a.engine.Table().Len(), "language", project.Language)
	return a, nil
}

// Project returns the loaded project. This is primarily for testing.
func (a *App) Project() *config.Project {
	return a.project
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
