package models

import "time"

// DeckSummary describes a deck snapshot stored in the archive.
type DeckSummary struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Size    int       `json:"size"`
	SavedAt time.Time `json:"saved_at"`
}

// DeckStats is the read-only view of a deck's progress.
type DeckStats struct {
	Name           string  `json:"name"`
	Size           int     `json:"size"`
	NumberViewed   int     `json:"number_viewed"`
	NumberCorrect  int     `json:"number_correct"`
	PercentViewed  float64 `json:"percent_viewed"`
	PercentCorrect float64 `json:"percent_correct"`
	Dirty          bool    `json:"dirty"`
}
