package repository

import (
	"context"

	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
)

// DeckRepository stores named deck snapshots. A snapshot keeps the deck name and the
// front and back of each card in order; study state is never stored.
type DeckRepository interface {
	// Save stores deck, replacing any snapshot with the same name.
	Save(ctx context.Context, deck *flashcard.Deck) (*models.DeckSummary, error)
	// Load rebuilds the named snapshot as a new deck with cards from factory.
	Load(ctx context.Context, name string, factory *flashcard.Factory, opts ...flashcard.DeckOption) (*flashcard.Deck, error)
	List(ctx context.Context) ([]models.DeckSummary, error)
	Delete(ctx context.Context, name string) error
}
