package flashcard

import (
	"fmt"

	"github.com/vytor/flashdeck/internal/errors"
)

// Flashcard is a front/back study unit. Front and back never change after creation;
// the study state changes through Flip, Reset and SetCorrect.
type Flashcard struct {
	id      string
	front   string
	back    string
	flipped bool
	viewed  bool
	correct bool
}

// Factory creates flashcards with ids drawn from a single generator.
type Factory struct {
	ids IDGenerator
}

// NewFactory returns a factory using ids. A nil generator falls back to a fresh Sequence.
func NewFactory(ids IDGenerator) *Factory {
	if ids == nil {
		ids = NewSequence(0)
	}
	return &Factory{ids: ids}
}

// NewFlashcard creates an unflipped, unviewed, incorrect card.
func (f *Factory) NewFlashcard(front, back string) (*Flashcard, error) {
	if front == "" {
		return nil, errors.NewInvalidArgumentError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewInvalidArgumentError("back", "must not be empty")
	}
	return &Flashcard{
		id:    f.ids.NextID(),
		front: front,
		back:  back,
	}, nil
}

func (c *Flashcard) ID() string { return c.id }
func (c *Flashcard) Front() string { return c.front }
func (c *Flashcard) Back() string { return c.back }
func (c *Flashcard) Flipped() bool { return c.flipped }
func (c *Flashcard) Viewed() bool { return c.viewed }
func (c *Flashcard) Correct() bool { return c.correct }

// DisplayedFace returns the back when the card is flipped, the front otherwise.
func (c *Flashcard) DisplayedFace() string {
	if c.flipped {
		return c.back
	}
	return c.front
}

// Flip turns the card over. Flipping back to the front still counts as viewed.
func (c *Flashcard) Flip() {
	c.flipped = !c.flipped
	c.viewed = true
}

// Reset returns the card to its state at creation.
func (c *Flashcard) Reset() {
	c.flipped = false
	c.viewed = false
	c.correct = false
}

// SetCorrect records the user's own assessment of the card.
func (c *Flashcard) SetCorrect(correct bool) {
	c.correct = correct
}

func (c *Flashcard) String() string {
	return Describe(c.id, c.front, c.back)
}

// Describe renders a card's id and sides the way Flashcard.String does, for callers
// holding a copy of a card rather than the card itself.
func Describe(id, front, back string) string {
	return fmt.Sprintf("Flashcard ID number: %s\nFront: %s\nBack: %s", id, front, back)
}
