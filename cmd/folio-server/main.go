package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rupeeworks/folio/internal/app"
	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/server"
)

func main() {
	common.LoadVersionFromFile()

	cfg, err := common.LoadConfig("config/folio.toml", os.Getenv("FOLIO_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	common.PrintBanner(cfg, logger)

	a, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize app")
	}
	a.Start()

	srv := server.NewServer(a)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)).
		Msg("Server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	a.Close()
	common.PrintShutdownBanner(logger)
}
