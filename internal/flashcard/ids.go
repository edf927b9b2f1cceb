package flashcard

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for new flashcards. Every value returned by a
// generator must differ from all values it returned before.
type IDGenerator interface {
	NextID() string
}

// Sequence generates decimal ids from a monotonically increasing counter.
// The first id is "1" unless the sequence is seeded.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence returns a sequence whose next id is start+1.
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

func (s *Sequence) NextID() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}

// Reset rewinds the sequence so the next id is "1" again.
func (s *Sequence) Reset() {
	s.n.Store(0)
}

// UUIDs generates random version 4 UUID strings.
type UUIDs struct{}

func (UUIDs) NextID() string {
	return uuid.NewString()
}
