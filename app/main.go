package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storescope/storescope/app/api"
	"github.com/storescope/storescope/app/cfg"
	"github.com/storescope/storescope/app/competitor"
	"github.com/storescope/storescope/app/database"
	"github.com/storescope/storescope/app/scraper"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting StoreScope server", "version", appCfg.Version)

	// Persistence is best-effort: a missing or broken database degrades
	// to extraction-only mode instead of refusing to start.
	storeRepo := setupStoreRepository(appCfg.DBPath)

	storeScraper := scraper.New(appCfg.WorkerCount,
		time.Duration(appCfg.RequestTimeout)*time.Second, appCfg.UserAgent)

	searchProvider := setupSearchProvider(appCfg.CompetitorsFile)
	finder := competitor.NewFinder(searchProvider)
	analyzer := competitor.NewAnalyzer(storeScraper, appCfg.WorkerCount,
		time.Duration(appCfg.CompetitorTimeout)*time.Second)

	apiHandler := api.NewHandler(storeScraper, finder, analyzer, storeRepo, appCfg.MaxCompetitors)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("StoreScope server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("StoreScope server shutdown complete")
}

func setupStoreRepository(dbPath string) database.StoreRepository {
	if dbPath == "" {
		slog.Info("Persistence disabled (DB_PATH not set)")
		return database.NewDisabledStoreRepository()
	}

	db, err := database.NewConnection(dbPath)
	if err != nil {
		slog.Error("Failed to connect to database, persistence disabled", "path", dbPath, "error", err)
		return database.NewDisabledStoreRepository()
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations, persistence disabled", "error", err)
		db.Close()
		return database.NewDisabledStoreRepository()
	}
	slog.Info("Database ready", "path", dbPath, "schema_version", version, "dirty", dirty)

	return database.NewSQLStoreRepository(db)
}

func setupSearchProvider(competitorsFile string) competitor.SearchProvider {
	if competitorsFile == "" {
		return competitor.NewStaticSearchProvider()
	}

	provider, err := competitor.NewStaticSearchProviderFromFile(competitorsFile)
	if err != nil {
		slog.Error("Failed to load competitors file, using built-in list", "path", competitorsFile, "error", err)
		return competitor.NewStaticSearchProvider()
	}
	return provider
}
