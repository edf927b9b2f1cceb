package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Save(ctx context.Context, deck *flashcard.Deck) (*models.DeckSummary, error) {
	args := m.Called(ctx, deck)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeckSummary), args.Error(1)
}

func (m *MockDeckRepository) Load(ctx context.Context, name string, factory *flashcard.Factory, opts ...flashcard.DeckOption) (*flashcard.Deck, error) {
	args := m.Called(ctx, name, factory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*flashcard.Deck), args.Error(1)
}

func (m *MockDeckRepository) List(ctx context.Context) ([]models.DeckSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DeckSummary), args.Error(1)
}

func (m *MockDeckRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
