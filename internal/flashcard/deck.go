package flashcard

import (
	"fmt"
	"math/rand/v2"
	"reflect"

	"github.com/vytor/flashdeck/internal/errors"
)

// EventSink receives a description of every change to a deck's membership.
type EventSink interface {
	Record(description string)
}

type discardSink struct{}

func (discardSink) Record(string) {}

// Deck is a named, ordered collection of flashcards with no two cards sharing an id.
// A Deck is not safe for concurrent use.
type Deck struct {
	name   string
	cards  []*Flashcard
	events EventSink
	rng    *rand.Rand
}

// DeckOption configures a Deck.
type DeckOption func(*Deck)

// WithEventSink sets where add and remove events are recorded. A nil sink, including
// a nil pointer of a concrete sink type, leaves events discarded.
func WithEventSink(sink EventSink) DeckOption {
	return func(d *Deck) {
		if !isNilSink(sink) {
			d.events = sink
		}
	}
}

func isNilSink(sink EventSink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// WithRand sets the source used by Cards(true). Without it the global source is used.
func WithRand(r *rand.Rand) DeckOption {
	return func(d *Deck) {
		d.rng = r
	}
}

// NewDeck creates an empty deck.
func NewDeck(name string, opts ...DeckOption) (*Deck, error) {
	if name == "" {
		return nil, errors.NewInvalidArgumentError("deck name", "must not be empty")
	}
	d := &Deck{
		name:   name,
		cards:  []*Flashcard{},
		events: discardSink{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Deck) Name() string {
	return d.name
}

// AddCard appends card unless a card with the same id is already in the deck.
func (d *Deck) AddCard(card *Flashcard) bool {
	if card == nil || d.indexOf(card.ID()) >= 0 {
		return false
	}
	d.cards = append(d.cards, card)
	d.events.Record(fmt.Sprintf("Added Flashcard to %s\n%s", d.name, card))
	return true
}

// RemoveCard removes the card with the same id as card.
func (d *Deck) RemoveCard(card *Flashcard) bool {
	if card == nil {
		return false
	}
	i := d.indexOf(card.ID())
	if i < 0 {
		return false
	}
	removed := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	d.events.Record(fmt.Sprintf("Deleted Flashcard from %s\n%s", d.name, removed))
	return true
}

// RemoveCardByID removes the first card whose id matches.
func (d *Deck) RemoveCardByID(id string) bool {
	card, ok := d.Card(id)
	if !ok {
		return false
	}
	return d.RemoveCard(card)
}

// Card looks up a card by id.
func (d *Deck) Card(id string) (*Flashcard, bool) {
	i := d.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return d.cards[i], true
}

func (d *Deck) indexOf(id string) int {
	for i, c := range d.cards {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

func (d *Deck) Size() int {
	return len(d.cards)
}

// NumberCorrect counts cards marked correct, viewed or not.
func (d *Deck) NumberCorrect() int {
	n := 0
	for _, c := range d.cards {
		if c.Correct() {
			n++
		}
	}
	return n
}

func (d *Deck) NumberViewed() int {
	n := 0
	for _, c := range d.cards {
		if c.Viewed() {
			n++
		}
	}
	return n
}

// PercentViewed returns the share of cards flipped at least once, from 0 to 100.
func (d *Deck) PercentViewed() float64 {
	if len(d.cards) == 0 {
		return 0
	}
	return float64(d.NumberViewed()) / float64(len(d.cards)) * 100
}

// PercentCorrect returns correct cards as a percentage of viewed cards.
// It is 0 while no card has been viewed.
func (d *Deck) PercentCorrect() float64 {
	viewed := d.NumberViewed()
	if viewed == 0 {
		return 0
	}
	return float64(d.NumberCorrect()) / float64(viewed) * 100
}

// Cards returns a copy of the deck's cards, in insertion order or freshly shuffled.
func (d *Deck) Cards(random bool) []*Flashcard {
	out := make([]*Flashcard, len(d.cards))
	copy(out, d.cards)
	if random {
		swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
		if d.rng != nil {
			d.rng.Shuffle(len(out), swap)
		} else {
			rand.Shuffle(len(out), swap)
		}
	}
	return out
}

// Reset resets every card in the deck. Membership and order are unchanged.
func (d *Deck) Reset() {
	for _, c := range d.cards {
		c.Reset()
	}
}
