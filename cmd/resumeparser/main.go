package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumeparser/internal/cli"
	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Initialize logging; stdout is reserved for command output
	level, err := errors.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	logger := errors.NewLoggerWithWriter(os.Stderr, level)

	// Resolve secrets before any client is built
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		logger.LogError(err, "Failed to load secrets from Vault")
		return 1
	}

	om, err := observability.Setup(ctx, cfg, cli.Version)
	if err != nil {
		logger.LogError(err, "Failed to initialize observability")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Failed to shutdown observability")
		}
	}()

	// Log startup
	logger.Debug("Starting resumeparser",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"observability", om.Enabled())

	// Execute command with cancellable context
	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Application execution failed")
		return 1
	}
	return 0
}
