package events_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/events"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

func TestLog_RecordsDeckChanges(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	log := events.NewLog(func() time.Time { return at })

	deck, err := flashcard.NewDeck("Capitals", flashcard.WithEventSink(log))
	require.NoError(t, err)
	card, err := flashcard.NewFactory(nil).NewFlashcard("France", "Paris")
	require.NoError(t, err)

	deck.AddCard(card)
	deck.RemoveCard(card)

	got := log.Events()
	require.Len(t, got, 2)
	assert.Equal(t, at, got[0].Date)
	assert.Contains(t, got[0].Description, "Added Flashcard to Capitals")
	assert.Contains(t, got[1].Description, "Deleted Flashcard from Capitals")
	assert.Contains(t, got[1].String(), "Tue, 02 Jan 2024 03:04:05 UTC")
}

func TestLog_EventsReturnsCopy(t *testing.T) {
	log := events.NewLog(nil)
	log.Record("first")

	got := log.Events()
	got[0].Description = "changed"

	assert.Equal(t, "first", log.Events()[0].Description)
}

func TestLog_Clear(t *testing.T) {
	log := events.NewLog(nil)
	log.Record("first")

	log.Clear()

	assert.Empty(t, log.Events())
}

func TestLog_BoundedKeepsMostRecent(t *testing.T) {
	log := events.NewBoundedLog(nil, 2)

	for _, d := range []string{"first", "second", "third", "fourth"} {
		log.Record(d)
	}

	got := log.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Description)
	assert.Equal(t, "fourth", got[1].Description)
	assert.Equal(t, 2, log.Dropped())
}

func TestLog_Drain(t *testing.T) {
	log := events.NewLog(nil)
	log.Record("first")
	log.Record("second")

	got := log.Drain()

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Description)
	assert.Empty(t, log.Events())
	assert.Empty(t, log.Drain())
}

func TestFanout(t *testing.T) {
	var buf bytes.Buffer
	memory := events.NewLog(nil)
	sink := events.NewLoggerSink(logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(logger.DEBUG),
		logger.WithColors(false),
		logger.WithCaller(false),
	))

	events.Fanout{memory, sink}.Record("Added Flashcard to Capitals")

	assert.Len(t, memory.Events(), 1)
	assert.Contains(t, buf.String(), "[events] Added Flashcard to Capitals")
}
