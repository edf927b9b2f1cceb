// Package events records the domain events decks emit when cards are added or removed.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
)

// Event is a single recorded change.
type Event struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s\n%s", e.Date.Format(time.RFC1123), e.Description)
}

// Log keeps events in memory in the order they were recorded. A bounded log keeps
// only the most recent events.
type Log struct {
	mu      sync.Mutex
	events  []Event
	now     func() time.Time
	limit   int
	dropped int
}

// NewLog creates an empty, unbounded log. A nil clock uses time.Now.
func NewLog(now func() time.Time) *Log {
	return NewBoundedLog(now, 0)
}

// NewBoundedLog creates an empty log holding at most limit events. A limit of zero
// or less means no limit.
func NewBoundedLog(now func() time.Time, limit int) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now, limit: limit}
}

func (l *Log) Record(description string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, Event{Date: l.now(), Description: description})
	if l.limit > 0 && len(l.events) > l.limit {
		over := len(l.events) - l.limit
		l.events = append(l.events[:0], l.events[over:]...)
		l.dropped += over
	}
}

// Dropped reports how many of the oldest events a bounded log has discarded.
func (l *Log) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Drain returns the recorded events and empties the log.
func (l *Log) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	l.dropped = 0
}

// LoggerSink narrates events through a logger at DEBUG level.
type LoggerSink struct {
	log *logger.Logger
}

func NewLoggerSink(log *logger.Logger) *LoggerSink {
	return &LoggerSink{log: log.WithPrefix("events")}
}

func (s *LoggerSink) Record(description string) {
	s.log.Debug("%s", description)
}

// Recorder is anything that accepts event descriptions.
type Recorder interface {
	Record(description string)
}

// Fanout forwards every event to each recorder in order.
type Fanout []Recorder

func (f Fanout) Record(description string) {
	for _, r := range f {
		r.Record(description)
	}
}
