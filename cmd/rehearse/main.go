// Package main implements the entry point for the rehearse server, a
// single-user spaced repetition trainer. It loads deck files, seeds the
// card store, and serves the review session API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkarhu/rehearse/internal/api"
	"github.com/pkarhu/rehearse/internal/config"
	"github.com/pkarhu/rehearse/internal/deck"
	"github.com/pkarhu/rehearse/internal/domain/srs"
	"github.com/pkarhu/rehearse/internal/platform/logger"
	"github.com/pkarhu/rehearse/internal/platform/sqldb"
	"github.com/pkarhu/rehearse/internal/service"
	"github.com/pkarhu/rehearse/internal/service/review"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
// once a stop signal arrives.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start rehearse: %v", err)
	}
}

// run loads configuration, wires the application together, seeds the card
// store from the deck files, and serves HTTP until interrupted.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("decks_dir", cfg.Decks.Dir))

	db, err := sqldb.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	decks, err := deck.LoadDir(cfg.Decks.Dir)
	if err != nil {
		return fmt.Errorf("failed to load decks: %w", err)
	}
	appLogger.Info("decks loaded", slog.Int("deck_count", len(decks)))

	cardStore := sqldb.NewCardStore(db, appLogger)
	logStore := sqldb.NewReviewLogStore(db, appLogger)

	seeder := service.NewDeckSeeder(db, cardStore, appLogger)
	if _, err := seeder.SeedDecks(context.Background(), decks, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to seed decks: %w", err)
	}

	srsService := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:       cfg.Scheduler.MinEaseFactor,
		BaseIntervalDays:    cfg.Scheduler.BaseIntervalDays,
		HardFactor:          cfg.Scheduler.HardFactor,
		AgainDelay:          time.Duration(cfg.Scheduler.AgainDelayMinutes) * time.Minute,
		FirstReviewDelay:    time.Duration(cfg.Scheduler.FirstReviewDelayMinutes) * time.Minute,
		SwitchThreshold:     cfg.Scheduler.SwitchThreshold,
		DisableAdaptiveEase: !cfg.Scheduler.AdaptiveEase,
	}))

	reviewService := review.NewReviewService(
		db,
		cardStore,
		logStore,
		srsService,
		review.Config{
			DueWindow:         time.Duration(cfg.Scheduler.DueWindowMinutes) * time.Minute,
			SelectionPoolSize: cfg.Scheduler.SelectionPoolSize,
		},
		nil,
		appLogger,
	)

	deckHandler := api.NewDeckHandler(decks, appLogger)
	reviewHandler := api.NewReviewHandler(reviewService, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newRouter(deckHandler, reviewHandler, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}
