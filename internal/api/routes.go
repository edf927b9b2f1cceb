package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/deck", func(r chi.Router) {
			r.Get("/", s.handleDeckStats)
			r.Post("/reset", s.handleResetDeck)
			r.Post("/save", s.handleSaveDeck)
			r.Post("/load", s.handleLoadDeck)
			r.Post("/sample", s.handleLoadSample)
			r.Get("/export", s.handleExportDeck)
			r.Post("/import", s.handleImportDeck)
			r.Post("/import-url", s.handleImportDeckURL)

			r.Get("/cards", s.handleListCards)
			r.Post("/cards", s.handleAddCard)
			r.Get("/cards/{id}", s.handleGetCard)
			r.Delete("/cards/{id}", s.handleRemoveCard)
			r.Post("/cards/{id}/flip", s.handleFlipCard)
			r.Post("/cards/{id}/mark", s.handleMarkCard)
		})

		r.Route("/archive", func(r chi.Router) {
			r.Get("/", s.handleListArchived)
			r.Post("/", s.handleArchiveDeck)
			r.Post("/{name}/restore", s.handleRestoreDeck)
			r.Delete("/{name}", s.handleDeleteArchived)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	return r
}
