package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
)

func TestCardView(t *testing.T) {
	card, err := flashcard.NewFactory(flashcard.NewSequence(0)).NewFlashcard("Japan", "Tokyo")
	require.NoError(t, err)
	card.Flip()
	card.SetCorrect(true)

	view := models.NewCardView(card)

	assert.Equal(t, card.String(), view.String())
	assert.Equal(t, "Flashcard ID number: 1\nFront: Japan\nBack: Tokyo", view.String())
	assert.True(t, view.Flipped)
	assert.True(t, view.Viewed)
	assert.True(t, view.Correct)
	assert.Equal(t, "Tokyo", view.Face)
}
