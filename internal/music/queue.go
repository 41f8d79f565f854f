package music

import (
	"math/rand"
	"time"

	"github.com/harukit/melodybot/internal/domain"
)

// Queue holds the pending tracks, the current track and the play history for
// one guild. It is not safe for concurrent use; the owning session serializes
// access to it.
type Queue struct {
	pending   []*domain.Track
	current   *domain.Track
	history   []*domain.Track
	startedAt time.Time

	Repeat          domain.RepeatMode
	Shuffle         bool
	NotifyChannelID string
}

func NewQueue() *Queue { return &Queue{} }

// Enqueue appends a track to the pending sequence.
func (q *Queue) Enqueue(t *domain.Track) {
	q.pending = append(q.pending, t)
}

// Advance moves the queue to its next track and returns it, or nil when there
// is nothing left to play.
//
//   - repeat=one replays the current track without touching pending/history
//   - otherwise the current track is pushed onto history and the next pending
//     track becomes current (FIFO, or random-without-replacement under shuffle)
//   - with repeat=all an exhausted pending sequence is refilled from history
func (q *Queue) Advance() *domain.Track {
	if q.Repeat == domain.RepeatOne && q.current != nil {
		return q.current
	}

	if q.current != nil {
		q.history = append(q.history, q.current)
	}

	if len(q.pending) > 0 {
		i := 0
		if q.Shuffle {
			i = rand.Intn(len(q.pending))
		}
		q.current = q.pending[i]
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
		q.startedAt = time.Now()
		return q.current
	}

	if q.Repeat == domain.RepeatAll && len(q.history) > 0 {
		q.pending = q.history
		q.history = nil
		q.current = q.pending[0]
		q.pending = q.pending[1:]
		q.startedAt = time.Now()
		return q.current
	}

	q.current = nil
	q.startedAt = time.Time{}
	return nil
}

// Position returns how long the current track has been playing.
func (q *Queue) Position() time.Duration {
	if q.current == nil || q.startedAt.IsZero() {
		return 0
	}
	return time.Since(q.startedAt)
}

// Clear resets pending, current, history and the play-start instant.
// Repeat and shuffle settings survive a clear.
func (q *Queue) Clear() {
	q.pending = nil
	q.current = nil
	q.history = nil
	q.startedAt = time.Time{}
}

func (q *Queue) Current() *domain.Track { return q.current }
func (q *Queue) IsEmpty() bool          { return len(q.pending) == 0 }
func (q *Queue) Len() int               { return len(q.pending) }

// Pending returns a copy of the pending sequence, in order.
func (q *Queue) Pending() []*domain.Track {
	out := make([]*domain.Track, len(q.pending))
	copy(out, q.pending)
	return out
}

// History returns a copy of the already-played sequence, oldest first.
func (q *Queue) History() []*domain.Track {
	out := make([]*domain.Track, len(q.history))
	copy(out, q.history)
	return out
}
