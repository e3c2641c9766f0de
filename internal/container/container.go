package container

import (
	"context"
	"fmt"
	"net/http"

	"termdeposit/adapters/artifacts"
	"termdeposit/app"
	"termdeposit/domain/client"
	"termdeposit/internal"
	"termdeposit/internal/api"
	"termdeposit/internal/config"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Loaded once at startup, read-only afterwards.
	Store *artifacts.Store

	Inference *app.InferenceService
	API       http.Handler
}

// New loads and cross-checks the artifacts, then builds the services on top of them.
// Errors are ARTIFACT_LOAD_FAILED or CONFIG_INVALID and should stop the process.
func New(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	paths := artifacts.PathsIn(cfg.Artifacts.Dir, cfg.Artifacts.PreprocessorFile, cfg.Artifacts.ModelFile, cfg.Artifacts.ColumnsFile)
	store, err := artifacts.Load(ctx, paths, artifacts.Options{Threshold: cfg.Inference.Threshold})
	if err != nil {
		return nil, err
	}
	if err := store.CheckCompatibility(client.FieldNames()); err != nil {
		return nil, err
	}
	c.Store = store

	summary := store.Summary()
	logger.Info("artifacts loaded from %s: model=%s version=%q columns=%d features=%d",
		cfg.Artifacts.Dir, summary.ModelKind, summary.ModelVersion, summary.Columns, summary.Features)

	c.Inference = app.NewInferenceService(
		store.Preprocessor(),
		store.Classifier(),
		app.WithLogger(logger),
		app.WithTopContributions(cfg.Inference.TopContributions),
	)
	c.API = api.NewRouter(c.Inference, logger)

	return c, nil
}

// Shutdown flushes the logger. Artifacts hold no OS resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info("shutting down")
	if err := c.Logger.Sync(); err != nil {
		// Syncing stderr fails on some platforms; nothing is lost.
		c.Logger.Debug("logger sync: %v", err)
	}
	return ctx.Err()
}
