// Package httpd implements the HTTP server for the storefront
// intelligence service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/storescope/cmd/common"
	"github.com/jonesrussell/storescope/internal/api"
	"github.com/jonesrussell/storescope/internal/logger"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted.
// It handles graceful shutdown on SIGINT or SIGTERM signals.
func Start() error {
	// Phase 1: Initialize dependencies
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Phase 2: Assemble the analysis pipeline
	pipeline := common.BuildPipeline(deps)
	defer pipeline.Close()

	// Phase 3: Start HTTP server
	server, errChan := startHTTPServer(deps, pipeline)

	// Phase 4: Run server until interrupted
	return runServerUntilInterrupt(deps.Logger, server, errChan)
}

// startHTTPServer creates and starts the HTTP server.
// Returns the server and an error channel for server errors.
func startHTTPServer(deps *common.CommandDeps, pipeline *common.Pipeline) (*http.Server, chan error) {
	router := api.SetupRouter(deps.Logger, pipeline.Service, pipeline.Metrics)

	serverCfg := deps.Config.Server
	server := &http.Server{
		Addr:         serverCfg.Address,
		Handler:      router,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
	}

	deps.Logger.Info("Starting HTTP server", "addr", serverCfg.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return server, errChan
}

// runServerUntilInterrupt runs the server until interrupted by signal or error.
func runServerUntilInterrupt(log logger.Interface, server *http.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		log.Info("Shutting down server", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		if shutdownErr := server.Shutdown(ctx); shutdownErr != nil {
			return fmt.Errorf("server shutdown: %w", shutdownErr)
		}

		log.Info("Server stopped")
		return nil
	}
}
