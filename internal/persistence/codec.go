// Package persistence converts decks to and from their JSON file format:
//
//	{
//	    "name": "<deck name>",
//	    "flashcards": [
//	        {"front": "<text>", "back": "<text>"}
//	    ]
//	}
//
// Only the name and each card's front and back are stored. Card ids and study state
// belong to a session, so a decoded deck always holds fresh, reset cards.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
)

// DefaultIndent is the number of spaces per nesting level in written files.
const DefaultIndent = 4

type deckDocument struct {
	Name       string         `json:"name"`
	Flashcards []cardDocument `json:"flashcards"`
}

type cardDocument struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Incoming documents use pointers so absent fields can be told apart from empty ones.
type incomingDeck struct {
	Name       *string         `json:"name"`
	Flashcards *[]incomingCard `json:"flashcards"`
}

type incomingCard struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// Encode renders deck as a JSON document indented by indent spaces per level.
// An indent of zero or less produces compact output.
func Encode(deck *flashcard.Deck, indent int) ([]byte, error) {
	if deck == nil {
		return nil, errors.NewInvalidArgumentError("deck", "must not be nil")
	}

	doc := deckDocument{
		Name:       deck.Name(),
		Flashcards: make([]cardDocument, 0, deck.Size()),
	}
	for _, c := range deck.Cards(false) {
		doc.Flashcards = append(doc.Flashcards, cardDocument{Front: c.Front(), Back: c.Back()})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(doc); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// Decode builds a new deck from a JSON document. Cards get ids from factory and are
// added through Deck.AddCard. No deck is returned unless the whole document is valid.
func Decode(data []byte, factory *flashcard.Factory, opts ...flashcard.DeckOption) (*flashcard.Deck, error) {
	if factory == nil {
		factory = flashcard.NewFactory(nil)
	}
	var doc incomingDeck
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewFormatError("invalid JSON", err)
	}
	if doc.Name == nil {
		return nil, errors.NewFormatError(`missing "name"`, nil)
	}
	if doc.Flashcards == nil {
		return nil, errors.NewFormatError(`missing "flashcards"`, nil)
	}

	// Validate every card before building anything so a bad document never consumes ids.
	for i, c := range *doc.Flashcards {
		if c.Front == nil {
			return nil, errors.NewFormatError(fmt.Sprintf(`flashcard %d is missing "front"`, i), nil)
		}
		if c.Back == nil {
			return nil, errors.NewFormatError(fmt.Sprintf(`flashcard %d is missing "back"`, i), nil)
		}
		if *c.Front == "" || *c.Back == "" {
			return nil, errors.NewFormatError(fmt.Sprintf("flashcard %d has an empty side", i), nil)
		}
	}

	deck, err := flashcard.NewDeck(*doc.Name, opts...)
	if err != nil {
		return nil, errors.NewFormatError(`invalid "name"`, err)
	}
	for i, c := range *doc.Flashcards {
		card, err := factory.NewFlashcard(*c.Front, *c.Back)
		if err != nil {
			return nil, errors.NewFormatError(fmt.Sprintf("invalid flashcard %d", i), err)
		}
		if !deck.AddCard(card) {
			return nil, errors.NewDuplicateError("flashcard", card.ID())
		}
	}
	return deck, nil
}
