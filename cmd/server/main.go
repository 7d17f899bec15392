// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Command server runs the recommendation HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taleweaver/recommend/internal/api"
	"github.com/taleweaver/recommend/internal/config"
	"github.com/taleweaver/recommend/internal/logging"
	"github.com/taleweaver/recommend/internal/recommend/pipeline"
)

func main() {
	if err := run(); err != nil {
		logger := logging.Logger()
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	engine, err := pipeline.NewDefaultEngine(&cfg.Engine, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	router := api.NewRouter(engine, cfg, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Int("max_recommendations", cfg.Engine.MaxRecommendations).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
