package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// insertBatchSize keeps each card insert well under SQLite's bound variable limit
// (4 variables per row).
const insertBatchSize = 500

type deckRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *deckRepository) Save(ctx context.Context, deck *flashcard.Deck) (*models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	if deck == nil {
		return nil, errors.NewInvalidArgumentError("deck", "must not be nil")
	}
	log.Debug("saving deck: name=%s, cards=%d", deck.Name(), deck.Size())

	summary := &models.DeckSummary{
		Name:    deck.Name(),
		Size:    deck.Size(),
		SavedAt: r.now(),
	}
	cards := deck.Cards(false)

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := execBuilt(ctx, tx, sqlBuilder.Delete("deck_cards").
			Where("deck_id IN (SELECT id FROM decks WHERE name = ?)", deck.Name())); err != nil {
			return err
		}
		if _, err := execBuilt(ctx, tx, sqlBuilder.Delete("decks").
			Where(squirrel.Eq{"name": deck.Name()})); err != nil {
			return err
		}

		res, err := execBuilt(ctx, tx, sqlBuilder.Insert("decks").
			Columns("name", "saved_at").
			Values(summary.Name, summary.SavedAt))
		if err != nil {
			return err
		}
		summary.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for start := 0; start < len(cards); start += insertBatchSize {
			end := min(start+insertBatchSize, len(cards))
			insert := sqlBuilder.Insert("deck_cards").Columns("deck_id", "position", "front", "back")
			for i := start; i < end; i++ {
				insert = insert.Values(summary.ID, i, cards[i].Front(), cards[i].Back())
			}
			if _, err := execBuilt(ctx, tx, insert); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save deck %s: %v", deck.Name(), err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("deck saved: id=%d", summary.ID)
	return summary, nil
}

func (r *deckRepository) Load(ctx context.Context, name string, factory *flashcard.Factory, opts ...flashcard.DeckOption) (*flashcard.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("loading deck: name=%s", name)

	query, args, err := sqlBuilder.Select("id").From("decks").Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	var deckID int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&deckID)
	if stderrors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: name=%s", name)
		return nil, errors.NewNotFoundError("deck", name)
	}
	if err != nil {
		log.Error("failed to look up deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	query, args, err = sqlBuilder.Select("front", "back").
		From("deck_cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query deck cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	defer rows.Close()

	type side struct{ front, back string }
	var sides []side
	for rows.Next() {
		var s side
		if err := rows.Scan(&s.front, &s.back); err != nil {
			log.Error("failed to scan deck card row: %v", err)
			return nil, errors.NewInternalError(err)
		}
		sides = append(sides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}

	if factory == nil {
		factory = flashcard.NewFactory(nil)
	}
	deck, err := flashcard.NewDeck(name, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range sides {
		card, err := factory.NewFlashcard(s.front, s.back)
		if err != nil {
			return nil, errors.NewFormatError("stored card rejected", err)
		}
		if !deck.AddCard(card) {
			return nil, errors.NewDuplicateError("flashcard", card.ID())
		}
	}

	log.Debug("deck loaded: name=%s, cards=%d", name, deck.Size())
	return deck, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	// saved_at is selected as a plain column so the driver still scans it as a time.
	query, args, err := sqlBuilder.Select("d.id", "d.name", "d.saved_at").
		Column("(SELECT COUNT(*) FROM deck_cards c WHERE c.deck_id = d.id)").
		From("decks d").
		OrderBy("d.name").
		ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	defer rows.Close()

	summaries := []models.DeckSummary{}
	for rows.Next() {
		var s models.DeckSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.SavedAt, &s.Size); err != nil {
			log.Error("failed to scan deck summary: %v", err)
			return nil, errors.NewInternalError(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Debug("found %d archived decks", len(summaries))
	return summaries, nil
}

func (r *deckRepository) Delete(ctx context.Context, name string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: name=%s", name)

	var deleted int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := execBuilt(ctx, tx, sqlBuilder.Delete("deck_cards").
			Where("deck_id IN (SELECT id FROM decks WHERE name = ?)", name)); err != nil {
			return err
		}
		res, err := execBuilt(ctx, tx, sqlBuilder.Delete("decks").Where(squirrel.Eq{"name": name}))
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Error("failed to delete deck %s: %v", name, err)
		return errors.NewInternalError(err)
	}
	if deleted == 0 {
		return errors.NewNotFoundError("deck", name)
	}
	return nil
}
