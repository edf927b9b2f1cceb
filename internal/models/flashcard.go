package models

import "github.com/vytor/flashdeck/internal/flashcard"

// CardView is a snapshot of a flashcard safe to hand to front-ends.
type CardView struct {
	ID      string `json:"id"`
	Front   string `json:"front"`
	Back    string `json:"back"`
	Face    string `json:"face"`
	Flipped bool   `json:"flipped"`
	Viewed  bool   `json:"viewed"`
	Correct bool   `json:"correct"`
}

func (v CardView) String() string {
	return flashcard.Describe(v.ID, v.Front, v.Back)
}

func NewCardView(c *flashcard.Flashcard) CardView {
	return CardView{
		ID:      c.ID(),
		Front:   c.Front(),
		Back:    c.Back(),
		Face:    c.DisplayedFace(),
		Flipped: c.Flipped(),
		Viewed:  c.Viewed(),
		Correct: c.Correct(),
	}
}

func NewCardViews(cards []*flashcard.Flashcard) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, NewCardView(c))
	}
	return out
}
