package main

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"termdeposit/internal"
	"termdeposit/internal/config"
	"termdeposit/internal/container"
	"termdeposit/internal/errors"
	"termdeposit/ui"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(exitCode(err))
	}

	logger, err := internal.NewLoggerWithOptions(internal.LogOptions{
		Level:  appConfig.Log.Level,
		Format: appConfig.Log.Format,
		File:   appConfig.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(appConfig, logger); err != nil {
		if errors.IsFatal(err) {
			logger.Error("cannot start [%s]: %v", errors.GetCode(err), err)
		} else {
			logger.Error("server stopped [%s]: %v", errors.GetCode(err), err)
		}
		_ = logger.Sync()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when configuration or artifacts kept the server from starting and 1
// for any later failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsFatal(err):
		return 2
	default:
		return 1
	}
}

func run(appConfig *config.Config, logger *internal.Logger) error {
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Artifacts are loaded and checked before the port is opened
	appContainer, err := container.New(ctx, appConfig, logger)
	if err != nil {
		return err
	}
	defer appContainer.Shutdown(context.Background())

	server, err := ui.NewServer(appContainer.Inference, appContainer.API, appContainer.Store.Summary(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	if appConfig.Profiling.Enabled {
		go func() {
			addr := ":" + strings.TrimPrefix(appConfig.Profiling.Port, ":")
			logger.Info("pprof listening on %s (go tool pprof http://localhost%s/debug/pprof/profile?seconds=30)", addr, addr)
			// DefaultServeMux carries the pprof handlers; the app router never uses it.
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Warn("pprof server failed: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              appConfig.Server.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting term deposit predictor on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	return nil
}
