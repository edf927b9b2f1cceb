package flashcard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
)

func TestNewFlashcard_InitialState(t *testing.T) {
	f := flashcard.NewFactory(flashcard.NewSequence(0))

	card, err := f.NewFlashcard("France", "Paris")
	require.NoError(t, err)

	assert.Equal(t, "1", card.ID())
	assert.Equal(t, "France", card.Front())
	assert.Equal(t, "Paris", card.Back())
	assert.Equal(t, "France", card.DisplayedFace())
	assert.False(t, card.Flipped())
	assert.False(t, card.Viewed())
	assert.False(t, card.Correct())
}

func TestNewFlashcard_UniqueIDs(t *testing.T) {
	f := flashcard.NewFactory(nil)
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		card, err := f.NewFlashcard("front", "back")
		require.NoError(t, err)
		assert.False(t, seen[card.ID()], "id %s handed out twice", card.ID())
		seen[card.ID()] = true
	}
}

func TestNewFlashcard_EmptySides(t *testing.T) {
	tests := []struct {
		name  string
		front string
		back  string
		field string
	}{
		{name: "empty front", front: "", back: "Paris", field: "front"},
		{name: "empty back", front: "France", back: "", field: "back"},
		{name: "both empty", front: "", back: "", field: "front"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flashcard.NewFactory(nil)

			card, err := f.NewFlashcard(tt.front, tt.back)

			assert.Nil(t, card)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNewFlashcard_RejectedInputDoesNotConsumeID(t *testing.T) {
	f := flashcard.NewFactory(flashcard.NewSequence(0))

	_, err := f.NewFlashcard("", "back")
	require.Error(t, err)

	card, err := f.NewFlashcard("front", "back")
	require.NoError(t, err)
	assert.Equal(t, "1", card.ID())
}

func TestFlip(t *testing.T) {
	card := newCard(t, "Japan", "Tokyo")

	card.Flip()
	assert.True(t, card.Flipped())
	assert.True(t, card.Viewed())
	assert.Equal(t, "Tokyo", card.DisplayedFace())

	card.Flip()
	assert.False(t, card.Flipped())
	assert.True(t, card.Viewed(), "flipping back to the front still counts as viewed")
	assert.Equal(t, "Japan", card.DisplayedFace())
}

func TestSetCorrect(t *testing.T) {
	card := newCard(t, "Japan", "Tokyo")

	card.SetCorrect(true)
	assert.True(t, card.Correct())
	assert.False(t, card.Viewed(), "marking correct does not view the card")

	card.SetCorrect(false)
	assert.False(t, card.Correct())
}

func TestReset(t *testing.T) {
	card := newCard(t, "Japan", "Tokyo")
	id := card.ID()
	card.Flip()
	card.SetCorrect(true)

	card.Reset()

	assert.False(t, card.Flipped())
	assert.False(t, card.Viewed())
	assert.False(t, card.Correct())
	assert.Equal(t, id, card.ID())
	assert.Equal(t, "Japan", card.Front())
	assert.Equal(t, "Tokyo", card.Back())
}

func TestString(t *testing.T) {
	card := newCard(t, "Japan", "Tokyo")

	assert.Equal(t, "Flashcard ID number: 1\nFront: Japan\nBack: Tokyo", card.String())
}

func newCard(t *testing.T, front, back string) *flashcard.Flashcard {
	t.Helper()
	card, err := flashcard.NewFactory(flashcard.NewSequence(0)).NewFlashcard(front, back)
	require.NoError(t, err)
	return card
}
