package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/events"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/worker"
)

// eventLogLimit caps the deck events kept in memory until shutdown.
const eventLogLimit = 1000

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Flashdeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("deck_path=%s", cfg.DeckPath)
	log.Debug("sample_deck_path=%s", cfg.SampleDeckPath)
	log.Debug("archive_path=%s", cfg.ArchivePath)
	log.Debug("id_strategy=%s", cfg.IDStrategy)
	log.Debug("autosave_interval=%v", cfg.AutosaveInterval)

	database, err := db.Open(cfg.ArchivePath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	var ids flashcard.IDGenerator = flashcard.NewSequence(0)
	if cfg.IDStrategy == config.IDStrategyUUID {
		ids = flashcard.UUIDs{}
	}
	eventLog := events.NewBoundedLog(nil, eventLogLimit)
	decks, err := services.NewDeckService(services.DeckServiceConfig{
		DeckPath:        cfg.DeckPath,
		SampleDeckPath:  cfg.SampleDeckPath,
		DefaultDeckName: cfg.DefaultDeckName,
		Indent:          cfg.JSONIndent,
	}, flashcard.NewFactory(ids), events.Fanout{eventLog, events.NewLoggerSink(log)}, sqlite.NewDeckRepository(database.DB))
	if err != nil {
		log.Error("failed to create deck service: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{Decks: decks, DB: database.DB}

	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(1, 8)
	pool.Start(ctx)
	go worker.Autosave(logger.NewContext(ctx, log), pool, decks, cfg.AutosaveInterval, cfg.AutosaveArchive)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Flush unsaved changes before the pool drains.
	if cfg.AutosaveInterval > 0 {
		if err := pool.Submit(&worker.SaveDeckJob{Decks: decks}); err != nil {
			log.Warn("unable to queue final save: %v", err)
		}
	}
	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	if dropped := eventLog.Dropped(); dropped > 0 {
		log.Info("%d older deck events were discarded", dropped)
	}
	for _, e := range eventLog.Drain() {
		log.Info("%s", e)
	}
	log.Info("===========================================")
	log.Info("Flashdeck Server Stopped")
	log.Info("===========================================")
}
