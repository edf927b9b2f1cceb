package services_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/events"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

const sampleDeck = `{
    "name": "Sample",
    "flashcards": [
        {"front": "France", "back": "Paris"},
        {"front": "Japan", "back": "Tokyo"}
    ]
}`

type fixture struct {
	svc    services.DeckService
	repo   *mocks.MockDeckRepository
	events *events.Log
	dir    string
	cfg    services.DeckServiceConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := services.DeckServiceConfig{
		DeckPath:        filepath.Join(dir, "deck.json"),
		SampleDeckPath:  filepath.Join(dir, "sampleDeck.json"),
		DefaultDeckName: "User deck",
		Indent:          4,
	}
	require.NoError(t, os.WriteFile(cfg.SampleDeckPath, []byte(sampleDeck), 0o644))

	repo := new(mocks.MockDeckRepository)
	log := events.NewLog(nil)
	svc, err := services.NewDeckService(cfg, flashcard.NewFactory(flashcard.NewSequence(0)), log, repo)
	require.NoError(t, err)

	return &fixture{svc: svc, repo: repo, events: log, dir: dir, cfg: cfg}
}

func TestNewDeckService_EmptyDefaultName(t *testing.T) {
	svc, err := services.NewDeckService(services.DeckServiceConfig{}, nil, nil, nil)

	assert.Nil(t, svc)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
}

func TestDeckService_StartsWithEmptyDefaultDeck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats := f.svc.Stats(ctx)
	assert.Equal(t, "User deck", stats.Name)
	assert.Equal(t, 0, stats.Size)
	assert.False(t, stats.Dirty)
	assert.Empty(t, f.svc.Cards(ctx, false))
}

func TestDeckService_AddCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	card, err := f.svc.AddCard(ctx, "France", "Paris")
	require.NoError(t, err)
	assert.Equal(t, "1", card.ID)
	assert.Equal(t, "France", card.Face)
	assert.True(t, f.svc.Dirty())

	require.Len(t, f.events.Events(), 1)
	assert.Contains(t, f.events.Events()[0].Description, "Added Flashcard to User deck")
}

func TestDeckService_AddCardInvalid(t *testing.T) {
	tests := []struct {
		name  string
		front string
		back  string
	}{
		{name: "empty front", front: "", back: "Paris"},
		{name: "empty back", front: "France", back: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.AddCard(context.Background(), tt.front, tt.back)

			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
			assert.False(t, f.svc.Dirty())
			assert.Empty(t, f.events.Events())
		})
	}
}

func TestDeckService_RemoveCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card, err := f.svc.AddCard(ctx, "France", "Paris")
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveCard(ctx, card.ID))
	assert.Equal(t, 0, f.svc.Stats(ctx).Size)

	err = f.svc.RemoveCard(ctx, "999")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.Len(t, f.events.Events(), 2)
}

func TestDeckService_StudyFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	france, err := f.svc.AddCard(ctx, "France", "Paris")
	require.NoError(t, err)
	_, err = f.svc.AddCard(ctx, "Japan", "Tokyo")
	require.NoError(t, err)

	flipped, err := f.svc.FlipCard(ctx, france.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris", flipped.Face)
	assert.True(t, flipped.Viewed)

	marked, err := f.svc.MarkCard(ctx, france.ID, true)
	require.NoError(t, err)
	assert.True(t, marked.Correct)

	stats := f.svc.Stats(ctx)
	assert.Equal(t, 1, stats.NumberViewed)
	assert.Equal(t, 1, stats.NumberCorrect)
	assert.Equal(t, 50.0, stats.PercentViewed)
	assert.Equal(t, 100.0, stats.PercentCorrect)

	f.svc.Reset(ctx)
	stats = f.svc.Stats(ctx)
	assert.Equal(t, 0, stats.NumberViewed)
	assert.Equal(t, 0, stats.NumberCorrect)
	assert.Equal(t, 2, stats.Size)

	_, err = f.svc.FlipCard(ctx, "999")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	_, err = f.svc.MarkCard(ctx, "999", true)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	_, err = f.svc.Card(ctx, "999")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestDeckService_SaveAndLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddCard(ctx, "France", "Paris")
	require.NoError(t, err)

	path, err := f.svc.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.cfg.DeckPath, path)
	assert.False(t, f.svc.Dirty())

	_, err = f.svc.AddCard(ctx, "Japan", "Tokyo")
	require.NoError(t, err)
	require.NoError(t, f.svc.Load(ctx))

	stats := f.svc.Stats(ctx)
	assert.Equal(t, "User deck", stats.Name)
	assert.Equal(t, 1, stats.Size)
	assert.False(t, stats.Dirty)

	cards := f.svc.Cards(ctx, false)
	require.Len(t, cards, 1)
	assert.Equal(t, "France", cards[0].Front)
	assert.Equal(t, "3", cards[0].ID, "loaded cards get fresh ids")
}

func TestDeckService_SaveUnwritablePath(t *testing.T) {
	f := newFixture(t)
	svc, err := services.NewDeckService(services.DeckServiceConfig{
		DeckPath:        filepath.Join(f.dir, "missing", "deck.json"),
		DefaultDeckName: "User deck",
	}, nil, nil, nil)
	require.NoError(t, err)
	_, err = svc.AddCard(context.Background(), "France", "Paris")
	require.NoError(t, err)

	_, err = svc.Save(context.Background())

	assert.True(t, errors.HasCode(err, errors.ErrCodeIO))
	assert.True(t, svc.Dirty())
}

func TestDeckService_LoadFailureKeepsCurrentDeck(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		wantCode string
	}{
		{name: "missing file", content: nil, wantCode: errors.ErrCodeIO},
		{name: "malformed document", content: strPtr(`{"name": "Broken"}`), wantCode: errors.ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(f.cfg.DeckPath, []byte(*tt.content), 0o644))
			}
			_, err := f.svc.AddCard(ctx, "France", "Paris")
			require.NoError(t, err)

			err = f.svc.Load(ctx)

			assert.True(t, errors.HasCode(err, tt.wantCode))
			stats := f.svc.Stats(ctx)
			assert.Equal(t, "User deck", stats.Name)
			assert.Equal(t, 1, stats.Size)
			assert.True(t, stats.Dirty)
		})
	}
}

func TestDeckService_LoadSample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.LoadSample(ctx))

	stats := f.svc.Stats(ctx)
	assert.Equal(t, "Sample", stats.Name)
	assert.Equal(t, 2, stats.Size)
	assert.True(t, stats.Dirty)

	err := f.svc.LoadSample(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
}

func TestDeckService_ExportImport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddCard(ctx, "France", "Paris")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(ctx, &buf))
	assert.Contains(t, buf.String(), `"front": "France"`)

	require.NoError(t, f.svc.Import(ctx, strings.NewReader(sampleDeck)))
	assert.Equal(t, "Sample", f.svc.Stats(ctx).Name)

	err = f.svc.Import(ctx, strings.NewReader(`{"flashcards": []}`))
	assert.True(t, errors.HasCode(err, errors.ErrCodeFormat))
	assert.Equal(t, "Sample", f.svc.Stats(ctx).Name)
}

func TestDeckService_ImportURL(t *testing.T) {
	dir := t.TempDir()
	fetcher := new(mocks.MockFetcher)
	svc, err := services.NewDeckService(services.DeckServiceConfig{
		DeckPath:        filepath.Join(dir, "deck.json"),
		DefaultDeckName: "User deck",
	}, nil, nil, nil, services.WithFetcher(fetcher))
	require.NoError(t, err)
	ctx := context.Background()

	fetcher.On("FetchDeck", ctx, "https://decks.example/capitals.json").Return([]byte(sampleDeck), nil)
	fetcher.On("FetchDeck", ctx, "https://decks.example/broken.json").Return([]byte(`{"name": ""}`), nil)
	fetcher.On("FetchDeck", ctx, "https://decks.example/missing.json").
		Return(nil, errors.NewIOError("fetch", "https://decks.example/missing.json", stderrors.New("status 404")))

	require.NoError(t, svc.ImportURL(ctx, "https://decks.example/capitals.json"))
	assert.Equal(t, "Sample", svc.Stats(ctx).Name)
	assert.True(t, svc.Dirty())

	err = svc.ImportURL(ctx, "https://decks.example/broken.json")
	assert.True(t, errors.HasCode(err, errors.ErrCodeFormat))
	err = svc.ImportURL(ctx, "https://decks.example/missing.json")
	assert.True(t, errors.HasCode(err, errors.ErrCodeIO))
	assert.Equal(t, "Sample", svc.Stats(ctx).Name)
	fetcher.AssertExpectations(t)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, stderrors.New("disk full") }

func TestDeckService_ExportWriteFailure(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Export(context.Background(), failingWriter{})

	assert.True(t, errors.HasCode(err, errors.ErrCodeIO))
}

func TestDeckService_Archive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	summary := &models.DeckSummary{ID: 1, Name: "User deck", Size: 0, SavedAt: time.Now()}
	f.repo.On("Save", ctx, mock.AnythingOfType("*flashcard.Deck")).Return(summary, nil)

	got, err := f.svc.Archive(ctx)

	require.NoError(t, err)
	assert.Equal(t, summary, got)
	f.repo.AssertExpectations(t)
}

func TestDeckService_Restore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	restored, err := flashcard.NewDeck("Archived")
	require.NoError(t, err)
	f.repo.On("Load", ctx, "Archived", mock.Anything).Return(restored, nil)

	require.NoError(t, f.svc.Restore(ctx, "Archived"))

	assert.Equal(t, "Archived", f.svc.Stats(ctx).Name)
	assert.True(t, f.svc.Dirty())
	f.repo.AssertExpectations(t)
}

func TestDeckService_RestoreErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.On("Load", ctx, "Nope", mock.Anything).Return(nil, errors.NewNotFoundError("deck", "Nope"))

	err := f.svc.Restore(ctx, "Nope")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	assert.Equal(t, "User deck", f.svc.Stats(ctx).Name)

	err = f.svc.Restore(ctx, "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidArgument))
	f.repo.AssertExpectations(t)
}

func TestDeckService_ListAndDeleteArchived(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := []models.DeckSummary{{ID: 1, Name: "Capitals", Size: 2}}
	f.repo.On("List", ctx).Return(list, nil)
	f.repo.On("Delete", ctx, "Capitals").Return(nil)

	got, err := f.svc.ListArchived(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got)
	assert.NoError(t, f.svc.DeleteArchived(ctx, "Capitals"))
	f.repo.AssertExpectations(t)
}

func TestDeckService_WithoutArchive(t *testing.T) {
	svc, err := services.NewDeckService(services.DeckServiceConfig{DefaultDeckName: "User deck"}, nil, nil, nil)
	require.NoError(t, err)
	ctx := context.Background()

	list, err := svc.ListArchived(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Archive(ctx)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	assert.True(t, errors.HasCode(svc.Restore(ctx, "x"), errors.ErrCodeInternal))
	assert.True(t, errors.HasCode(svc.DeleteArchived(ctx, "x"), errors.ErrCodeInternal))
}

func strPtr(s string) *string {
	return &s
}
