package worker

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// DeckSaver is the part of the deck service background jobs need.
type DeckSaver interface {
	Save(ctx context.Context) (string, error)
	Archive(ctx context.Context) (*models.DeckSummary, error)
	Dirty() bool
}

// SaveDeckJob writes the current deck to its file if it has unsaved changes.
type SaveDeckJob struct {
	Decks DeckSaver
}

func (j *SaveDeckJob) Name() string { return "save_deck" }

func (j *SaveDeckJob) Run(ctx context.Context) error {
	if !j.Decks.Dirty() {
		logger.FromContext(ctx).Debug("deck already saved, skipping")
		return nil
	}
	_, err := j.Decks.Save(ctx)
	return err
}

// ArchiveDeckJob stores a snapshot of the current deck in the archive.
type ArchiveDeckJob struct {
	Decks DeckSaver
}

func (j *ArchiveDeckJob) Name() string { return "archive_deck" }

func (j *ArchiveDeckJob) Run(ctx context.Context) error {
	summary, err := j.Decks.Archive(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("archived %s: cards=%d", summary.Name, summary.Size)
	return nil
}

// Autosave submits a save job every interval while the deck has unsaved changes,
// and an archive job as well when archive is set. It returns when ctx is done.
func Autosave(ctx context.Context, pool *Pool, decks DeckSaver, interval time.Duration, archive bool) {
	log := logger.FromContext(ctx).WithPrefix("autosave")
	if interval <= 0 {
		log.Debug("autosave disabled")
		return
	}
	log.Info("autosaving every %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !decks.Dirty() {
				continue
			}
			if err := pool.Submit(&SaveDeckJob{Decks: decks}); err != nil {
				log.Warn("unable to queue save: %v", err)
			}
			if archive {
				if err := pool.Submit(&ArchiveDeckJob{Decks: decks}); err != nil {
					log.Warn("unable to queue archive: %v", err)
				}
			}
		}
	}
}
