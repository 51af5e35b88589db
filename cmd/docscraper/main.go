// Command docscraper runs the document scraping service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"docscraper/internal/api"
	"docscraper/internal/clock/system"
	"docscraper/internal/config"
	"docscraper/internal/extract"
	"docscraper/internal/fetch"
	"docscraper/internal/fetch/headless"
	"docscraper/internal/id/uuid"
	"docscraper/internal/job"
	"docscraper/internal/logging"
	"docscraper/internal/metrics"
	"docscraper/internal/plan"
	"docscraper/internal/results"
	"docscraper/internal/scrape"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "docscraper: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := results.NewFS(cfg.Results.BaseDir)
	if err != nil {
		return err
	}

	fetcher := fetch.New(fetch.Config{
		UserAgent:    cfg.Scraper.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		MaxBodyBytes: cfg.Scraper.MaxBodyBytes,
	})

	var renderer scrape.Renderer = headless.NewNoop()
	if cfg.Headless.Enabled {
		chrome, err := headless.NewChromedp(headless.Config{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.Scraper.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			return fmt.Errorf("headless renderer: %w", err)
		}
		defer chrome.Close()
		renderer = chrome
	}

	planner := plan.New(fetcher, renderer, logger)

	manager := job.NewManager(
		ctx,
		planner,
		fetcher,
		extract.NewRegistry(),
		store,
		system.Clock{},
		uuid.Generator{},
		logger,
		job.Config{Concurrency: cfg.Scraper.Concurrency},
	)

	server := api.NewServer(logger, manager, store)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	// Let in-flight jobs observe cancellation and wind down.
	manager.Wait()
	logger.Info("shutdown complete")
	return nil
}
