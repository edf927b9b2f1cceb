package persistence

import (
	"os"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

// Writer writes decks to a JSON file. Open, Write and Close are separate steps so a
// caller learns that the destination is unusable before anything is written.
type Writer struct {
	destination string
	indent      int
	file        *os.File
	log         *logger.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) WriterOption {
	return func(w *Writer) {
		w.indent = n
	}
}

func NewWriter(destination string, opts ...WriterOption) *Writer {
	w := &Writer{
		destination: destination,
		indent:      DefaultIndent,
		log:         logger.Default().WithPrefix("codec"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) Destination() string {
	return w.destination
}

// Open creates or truncates the destination file.
func (w *Writer) Open() error {
	if w.file != nil {
		if err := w.Close(); err != nil {
			return err
		}
	}
	f, err := os.Create(w.destination)
	if err != nil {
		w.log.Warn("failed to open %s for writing: %v", w.destination, err)
		return errors.NewIOError("open", w.destination, err)
	}
	w.file = f
	return nil
}

// Write writes the JSON representation of deck to the open destination.
func (w *Writer) Write(deck *flashcard.Deck) error {
	if w.file == nil {
		return errors.NewIOError("write to unopened", w.destination, nil)
	}
	data, err := Encode(deck, w.indent)
	if err != nil {
		return err
	}
	if _, err := w.file.Write(data); err != nil {
		w.log.Error("failed to write deck to %s: %v", w.destination, err)
		return errors.NewIOError("write", w.destination, err)
	}
	w.log.Debug("deck written: name=%s, cards=%d, destination=%s", deck.Name(), deck.Size(), w.destination)
	return nil
}

// Close closes the destination. Closing a writer that is not open does nothing.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return errors.NewIOError("close", w.destination, err)
	}
	return nil
}
