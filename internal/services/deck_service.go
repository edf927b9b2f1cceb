package services

import (
	"context"
	stderrors "errors"
	"io"
	"sync"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/persistence"
	"github.com/vytor/flashdeck/internal/remote"
	"github.com/vytor/flashdeck/internal/repository"
)

var errNoArchive = stderrors.New("deck archive is not configured")

// DeckService owns the deck a user is currently working on and serializes every
// operation on it, so console and HTTP front-ends can share one instance.
type DeckService interface {
	Stats(ctx context.Context) models.DeckStats
	Cards(ctx context.Context, random bool) []models.CardView
	Card(ctx context.Context, id string) (models.CardView, error)
	AddCard(ctx context.Context, front, back string) (models.CardView, error)
	RemoveCard(ctx context.Context, id string) error
	FlipCard(ctx context.Context, id string) (models.CardView, error)
	MarkCard(ctx context.Context, id string, correct bool) (models.CardView, error)
	Reset(ctx context.Context)

	Save(ctx context.Context) (string, error)
	Load(ctx context.Context) error
	LoadSample(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
	ImportURL(ctx context.Context, rawURL string) error

	Archive(ctx context.Context) (*models.DeckSummary, error)
	Restore(ctx context.Context, name string) error
	ListArchived(ctx context.Context) ([]models.DeckSummary, error)
	DeleteArchived(ctx context.Context, name string) error

	Dirty() bool
}

// DeckServiceConfig holds the file locations and defaults used by DeckService.
type DeckServiceConfig struct {
	DeckPath        string
	SampleDeckPath  string
	DefaultDeckName string
	Indent          int
}

type deckService struct {
	mu      sync.Mutex
	cfg     DeckServiceConfig
	factory *flashcard.Factory
	events  flashcard.EventSink
	repo    repository.DeckRepository
	fetcher remote.Fetcher
	deck    *flashcard.Deck
	dirty   bool
}

// DeckServiceOption configures optional collaborators of a DeckService.
type DeckServiceOption func(*deckService)

// WithFetcher sets how ImportURL downloads documents. The default is remote.New().
func WithFetcher(f remote.Fetcher) DeckServiceOption {
	return func(s *deckService) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// NewDeckService creates a DeckService holding an empty deck named cfg.DefaultDeckName.
// A nil repo disables the archive operations.
func NewDeckService(cfg DeckServiceConfig, factory *flashcard.Factory, events flashcard.EventSink, repo repository.DeckRepository, opts ...DeckServiceOption) (DeckService, error) {
	if factory == nil {
		factory = flashcard.NewFactory(nil)
	}
	s := &deckService{
		cfg:     cfg,
		factory: factory,
		events:  events,
		repo:    repo,
		fetcher: remote.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	deck, err := flashcard.NewDeck(cfg.DefaultDeckName, s.deckOptions()...)
	if err != nil {
		return nil, err
	}
	s.deck = deck
	return s, nil
}

func (s *deckService) deckOptions() []flashcard.DeckOption {
	return []flashcard.DeckOption{flashcard.WithEventSink(s.events)}
}

func (s *deckService) Stats(ctx context.Context) models.DeckStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.DeckStats{
		Name:           s.deck.Name(),
		Size:           s.deck.Size(),
		NumberViewed:   s.deck.NumberViewed(),
		NumberCorrect:  s.deck.NumberCorrect(),
		PercentViewed:  s.deck.PercentViewed(),
		PercentCorrect: s.deck.PercentCorrect(),
		Dirty:          s.dirty,
	}
}

func (s *deckService) Cards(ctx context.Context, random bool) []models.CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewCardViews(s.deck.Cards(random))
}

func (s *deckService) Card(ctx context.Context, id string) (models.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.deck.Card(id)
	if !ok {
		return models.CardView{}, errors.NewNotFoundError("flashcard", id)
	}
	return models.NewCardView(card), nil
}

func (s *deckService) AddCard(ctx context.Context, front, back string) (models.CardView, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.factory.NewFlashcard(front, back)
	if err != nil {
		return models.CardView{}, err
	}
	if !s.deck.AddCard(card) {
		log.Warn("generator produced an id already in the deck: id=%s", card.ID())
		return models.CardView{}, errors.NewDuplicateError("flashcard", card.ID())
	}
	s.dirty = true
	log.Debug("card added: id=%s, deck=%s", card.ID(), s.deck.Name())
	return models.NewCardView(card), nil
}

func (s *deckService) RemoveCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deck.RemoveCardByID(id) {
		return errors.NewNotFoundError("flashcard", id)
	}
	s.dirty = true
	log.Debug("card removed: id=%s, deck=%s", id, s.deck.Name())
	return nil
}

func (s *deckService) FlipCard(ctx context.Context, id string) (models.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.deck.Card(id)
	if !ok {
		return models.CardView{}, errors.NewNotFoundError("flashcard", id)
	}
	card.Flip()
	return models.NewCardView(card), nil
}

func (s *deckService) MarkCard(ctx context.Context, id string, correct bool) (models.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.deck.Card(id)
	if !ok {
		return models.CardView{}, errors.NewNotFoundError("flashcard", id)
	}
	card.SetCorrect(correct)
	return models.NewCardView(card), nil
}

// Reset clears study state only; it is not a change worth saving.
func (s *deckService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck.Reset()
}

// Save writes the current deck to the configured deck file and returns its path.
func (s *deckService) Save(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	s.mu.Lock()
	defer s.mu.Unlock()

	w := persistence.NewWriter(s.cfg.DeckPath, persistence.WithIndent(s.cfg.Indent))
	if err := w.Open(); err != nil {
		log.Error("failed to open deck file: %v", err)
		return "", err
	}
	if err := w.Write(s.deck); err != nil {
		_ = w.Close()
		log.Error("failed to write deck: %v", err)
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	s.dirty = false
	log.Info("saved %s to %s", s.deck.Name(), w.Destination())
	return w.Destination(), nil
}

// Load replaces the current deck with the one in the deck file. On failure the
// current deck is kept.
func (s *deckService) Load(ctx context.Context) error {
	deck, err := s.readDeck(ctx, s.cfg.DeckPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.dirty = false
	return nil
}

// LoadSample replaces an empty current deck with the sample deck.
func (s *deckService) LoadSample(ctx context.Context) error {
	if s.cfg.SampleDeckPath == "" {
		return errors.NewNotFoundError("sample deck", "")
	}
	if s.Stats(ctx).Size > 0 {
		return errSampleNeedsEmptyDeck()
	}
	deck, err := s.readDeck(ctx, s.cfg.SampleDeckPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a card may have been added while the sample was being read
	if s.deck.Size() > 0 {
		return errSampleNeedsEmptyDeck()
	}
	s.deck = deck
	s.dirty = true
	return nil
}

func errSampleNeedsEmptyDeck() error {
	return errors.NewInvalidArgumentError("deck", "sample deck can only replace an empty deck")
}

func (s *deckService) readDeck(ctx context.Context, path string) (*flashcard.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_service")

	r := persistence.NewReader(path, s.factory, s.deckOptions()...)
	deck, err := r.Read()
	if err != nil {
		log.Warn("unable to read deck from %s: %v", r.Source(), err)
		return nil, err
	}
	log.Info("loaded %s from %s", deck.Name(), r.Source())
	return deck, nil
}

// Export writes the current deck as a JSON document.
func (s *deckService) Export(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	data, err := persistence.Encode(s.deck, s.cfg.Indent)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.NewIOError("write", "export", err)
	}
	return nil
}

// Import replaces the current deck with the JSON document read from r.
func (s *deckService) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.NewIOError("read", "import", err)
	}
	return s.replaceWith(ctx, data)
}

// ImportURL replaces the current deck with the JSON document published at rawURL.
func (s *deckService) ImportURL(ctx context.Context, rawURL string) error {
	data, err := s.fetcher.FetchDeck(ctx, rawURL)
	if err != nil {
		return err
	}
	return s.replaceWith(ctx, data)
}

func (s *deckService) replaceWith(ctx context.Context, data []byte) error {
	log := logger.FromContext(ctx).WithPrefix("deck_service")

	deck, err := persistence.Decode(data, s.factory, s.deckOptions()...)
	if err != nil {
		log.Warn("rejected imported deck: %v", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.dirty = true
	log.Info("imported %s with %d cards", deck.Name(), deck.Size())
	return nil
}

// Archive stores a snapshot of the current deck, replacing any snapshot with the same name.
func (s *deckService) Archive(ctx context.Context) (*models.DeckSummary, error) {
	if s.repo == nil {
		return nil, errors.NewInternalError(errNoArchive)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Save(ctx, s.deck)
}

// Restore replaces the current deck with an archived snapshot.
func (s *deckService) Restore(ctx context.Context, name string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	if s.repo == nil {
		return errors.NewInternalError(errNoArchive)
	}
	if name == "" {
		return errors.NewInvalidArgumentError("name", "must not be empty")
	}

	deck, err := s.repo.Load(ctx, name, s.factory, s.deckOptions()...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.dirty = true
	log.Info("restored %s from archive", name)
	return nil
}

func (s *deckService) ListArchived(ctx context.Context) ([]models.DeckSummary, error) {
	if s.repo == nil {
		return []models.DeckSummary{}, nil
	}
	return s.repo.List(ctx)
}

func (s *deckService) DeleteArchived(ctx context.Context, name string) error {
	if s.repo == nil {
		return errors.NewInternalError(errNoArchive)
	}
	return s.repo.Delete(ctx, name)
}

func (s *deckService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}
