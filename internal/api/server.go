package api

import (
	"database/sql"

	"github.com/vytor/flashdeck/internal/services"
)

// Server exposes the current deck and the deck archive as a JSON API.
type Server struct {
	Decks services.DeckService
	// DB backs the readiness probe. A nil DB reports ready.
	DB *sql.DB
}
