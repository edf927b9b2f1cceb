package main

import (
	"context"
	"os"

	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/console"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/events"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
)

func main() {
	cfg := config.Load()

	// Logs go to stderr so they never interleave with the menu on stdout.
	log := logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	var archive repository.DeckRepository
	database, err := db.Open(cfg.ArchivePath)
	if err != nil {
		log.Warn("deck archive unavailable: %v", err)
	} else {
		defer database.Close()
		archive = sqlite.NewDeckRepository(database.DB)
	}

	var ids flashcard.IDGenerator = flashcard.NewSequence(0)
	if cfg.IDStrategy == config.IDStrategyUUID {
		ids = flashcard.UUIDs{}
	}
	decks, err := services.NewDeckService(services.DeckServiceConfig{
		DeckPath:        cfg.DeckPath,
		SampleDeckPath:  cfg.SampleDeckPath,
		DefaultDeckName: cfg.DefaultDeckName,
		Indent:          cfg.JSONIndent,
	}, flashcard.NewFactory(ids), events.NewLoggerSink(log), archive)
	if err != nil {
		log.Error("failed to create deck service: %v", err)
		os.Exit(1)
	}

	ctx := logger.NewContext(context.Background(), log)
	if err := console.NewApp(decks, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Error("console input failed: %v", err)
		os.Exit(1)
	}
}
