package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taperedworks/enquiry-tracker/internal/catalog"
	"github.com/taperedworks/enquiry-tracker/internal/classify"
	"github.com/taperedworks/enquiry-tracker/internal/common"
	"github.com/taperedworks/enquiry-tracker/internal/export"
	"github.com/taperedworks/enquiry-tracker/internal/extract"
	"github.com/taperedworks/enquiry-tracker/internal/llm/gemini"
	"github.com/taperedworks/enquiry-tracker/internal/match"
	"github.com/taperedworks/enquiry-tracker/internal/repository"
	"github.com/taperedworks/enquiry-tracker/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// History store is optional: an unreachable database degrades the history
	// endpoints instead of blocking classification.
	var history repository.HistoryRepository
	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Warn("history database unavailable, continuing without it", "error", err)
	} else {
		defer store.Close()
		if err := store.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
			logger.Warn("history database health failed, continuing without it", "error", err)
			store.Close()
		} else {
			history = repository.NewHistoryRepository(store)
		}
	}

	catalogClient := catalog.NewClient(cfg.Catalog, logger)
	matcher := match.NewMatcher(catalogClient, cfg.Catalog.Threshold, cfg.Catalog.SinceDate, logger)
	classifier := classify.NewClassifier(matcher, catalogClient, logger)

	oracle, err := gemini.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		logger.Error("creating completion client", "error", err)
		os.Exit(1)
	}
	extractor := extract.NewService(oracle, oracle.Model(), logger)
	exporter := export.NewService(logger)

	srv := server.NewServer(cfg.Server.Addr, classifier, extractor, exporter, history, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("stopped")
}
