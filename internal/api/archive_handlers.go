package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListArchived(w http.ResponseWriter, r *http.Request) {
	decks, err := s.Decks.ListArchived(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, decks)
}

func (s *Server) handleArchiveDeck(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Decks.Archive(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, summary)
}

func (s *Server) handleRestoreDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.Restore(r.Context(), chi.URLParam(r, "name")); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleDeleteArchived(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.DeleteArchived(r.Context(), chi.URLParam(r, "name")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
