package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

type addCardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type markCardRequest struct {
	Correct *bool `json:"correct"`
}

type importURLRequest struct {
	URL string `json:"url"`
}

type savedResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	random := false
	if v := r.URL.Query().Get("random"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("random must be a boolean"))
			return
		}
		random = parsed
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Cards(r.Context(), random))
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.Decks.Card(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Decks.AddCard(r.Context(), req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("card added: id=%s", card.ID)
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.RemoveCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFlipCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.Decks.FlipCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleMarkCard(w http.ResponseWriter, r *http.Request) {
	var req markCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Correct == nil {
		handleError(w, r, errors.NewBadRequestError(`"correct" is required`))
		return
	}

	card, err := s.Decks.MarkCard(r.Context(), chi.URLParam(r, "id"), *req.Correct)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleResetDeck(w http.ResponseWriter, r *http.Request) {
	s.Decks.Reset(r.Context())
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleSaveDeck(w http.ResponseWriter, r *http.Request) {
	name := s.Decks.Stats(r.Context()).Name
	path, err := s.Decks.Save(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, savedResponse{Name: name, Path: path})
}

func (s *Server) handleLoadDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.Load(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleLoadSample(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.LoadSample(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="deck.json"`)
	if err := s.Decks.Export(r.Context(), w); err != nil {
		// headers may already be out; log only
		logger.FromContext(r.Context()).Error("failed to export deck: %v", err)
	}
}

func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.Import(r.Context(), http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}

func (s *Server) handleImportDeckURL(w http.ResponseWriter, r *http.Request) {
	var req importURLRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Decks.ImportURL(r.Context(), req.URL); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Decks.Stats(r.Context()))
}
