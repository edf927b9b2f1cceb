package persistence

import (
	"os"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

// Reader reads a deck from a JSON file.
type Reader struct {
	source   string
	factory  *flashcard.Factory
	deckOpts []flashcard.DeckOption
	log      *logger.Logger
}

// NewReader creates a reader for source. Decks it reads are created with deckOpts.
func NewReader(source string, factory *flashcard.Factory, deckOpts ...flashcard.DeckOption) *Reader {
	if factory == nil {
		factory = flashcard.NewFactory(nil)
	}
	return &Reader{
		source:   source,
		factory:  factory,
		deckOpts: deckOpts,
		log:      logger.Default().WithPrefix("codec"),
	}
}

func (r *Reader) Source() string {
	return r.source
}

// Read parses the source file into a new deck. It fails with IO_FAILURE when the file
// cannot be read and FORMAT_ERROR when its content is not a valid deck document.
func (r *Reader) Read() (*flashcard.Deck, error) {
	r.log.Debug("reading deck: source=%s", r.source)

	data, err := os.ReadFile(r.source)
	if err != nil {
		r.log.Warn("failed to read deck file: %v", err)
		return nil, errors.NewIOError("read", r.source, err)
	}

	deck, err := Decode(data, r.factory, r.deckOpts...)
	if err != nil {
		r.log.Warn("failed to parse deck file %s: %v", r.source, err)
		return nil, err
	}

	r.log.Debug("deck read: name=%s, cards=%d", deck.Name(), deck.Size())
	return deck, nil
}
