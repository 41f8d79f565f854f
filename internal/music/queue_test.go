package music

import (
	"testing"
	"time"

	"github.com/harukit/melodybot/internal/domain"
)

func track(title string) *domain.Track {
	return domain.NewTrack(title, "https://example.com/watch?v="+title)
}

func TestAdvanceFIFO(t *testing.T) {
	q := NewQueue()
	a, b, c := track("A"), track("B"), track("C")
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	for i, want := range []*domain.Track{a, b, c} {
		got := q.Advance()
		if got != want {
			t.Fatalf("advance %d: got %v, want %s", i, got, want.Title)
		}
		if q.Current() != want {
			t.Fatalf("advance %d: current = %v, want %s", i, q.Current(), want.Title)
		}
	}
	if got := q.Advance(); got != nil {
		t.Fatalf("advance on empty queue: got %v, want nil", got)
	}
	if q.Current() != nil {
		t.Fatalf("current should be unset after terminal advance")
	}
}

func TestAdvanceEmptyQueueIsTerminalIdle(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 3; i++ {
		if got := q.Advance(); got != nil {
			t.Fatalf("advance %d on empty queue: got %v", i, got)
		}
		if q.Current() != nil {
			t.Fatal("current must stay unset")
		}
	}
}

func TestRepeatOneReplaysCurrent(t *testing.T) {
	q := NewQueue()
	a, b := track("A"), track("B")
	q.Enqueue(a)
	q.Enqueue(b)

	if got := q.Advance(); got != a {
		t.Fatalf("first advance: got %v, want A", got)
	}
	q.Repeat = domain.RepeatOne

	for i := 0; i < 5; i++ {
		if got := q.Advance(); got != a {
			t.Fatalf("repeat-one advance %d: got %v, want A", i, got)
		}
	}
	if q.Len() != 1 {
		t.Fatalf("pending consumed under repeat-one: len=%d", q.Len())
	}
	if len(q.History()) != 0 {
		t.Fatalf("history mutated under repeat-one: %d entries", len(q.History()))
	}

	// dropping repeat-one resumes normal consumption
	q.Repeat = domain.RepeatOff
	if got := q.Advance(); got != b {
		t.Fatalf("after repeat off: got %v, want B", got)
	}
}

func TestRepeatAllRefillsFromHistory(t *testing.T) {
	q := NewQueue()
	a, b := track("A"), track("B")
	q.Enqueue(a)
	q.Enqueue(b)
	q.Repeat = domain.RepeatAll

	if got := q.Advance(); got != a {
		t.Fatalf("got %v, want A", got)
	}
	if got := q.Advance(); got != b {
		t.Fatalf("got %v, want B", got)
	}
	if !q.IsEmpty() {
		t.Fatal("pending should be exhausted")
	}

	// exhausted pending refills from history [A, B] and replays A
	if got := q.Advance(); got != a {
		t.Fatalf("refill advance: got %v, want A", got)
	}
	if len(q.History()) != 0 {
		t.Fatalf("history should reset on refill, has %d", len(q.History()))
	}
	if q.Len() != 1 || q.Pending()[0] != b {
		t.Fatalf("pending after refill should be [B]")
	}
}

func TestScenarioThreeTracksThenIdle(t *testing.T) {
	q := NewQueue()
	a, b, c := track("A"), track("B"), track("C")
	a.Duration, b.Duration, c.Duration = 180*time.Second, 200*time.Second, 150*time.Second
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	if got := q.Advance(); got != a {
		t.Fatalf("current after first enqueue cycle: got %v, want A", got)
	}
	if got := q.Advance(); got != b {
		t.Fatalf("got %v, want B", got)
	}
	if got := q.Advance(); got != c {
		t.Fatalf("got %v, want C", got)
	}
	// history after second advance past B contains A and B
	h := q.History()
	if len(h) != 2 || h[0] != a || h[1] != b {
		t.Fatalf("history = %v, want [A B]", h)
	}
	if got := q.Advance(); got != nil {
		t.Fatalf("final advance: got %v, want nil", got)
	}
}

func TestShuffleDrawsWithoutReplacement(t *testing.T) {
	q := NewQueue()
	q.Shuffle = true
	want := map[string]bool{}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		tr := track(name)
		want[tr.ID] = true
		q.Enqueue(tr)
	}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		got := q.Advance()
		if got == nil {
			t.Fatalf("advance %d returned nil with pending tracks", i)
		}
		if seen[got.ID] {
			t.Fatalf("track %s drawn twice under shuffle", got.Title)
		}
		seen[got.ID] = true
		if !want[got.ID] {
			t.Fatalf("unknown track %s", got.Title)
		}
	}
	if got := q.Advance(); got != nil {
		t.Fatalf("shuffle exhausted queue should yield nil, got %v", got)
	}
}

func TestClearResetsStateButKeepsModes(t *testing.T) {
	q := NewQueue()
	q.Repeat = domain.RepeatAll
	q.Shuffle = true
	q.Enqueue(track("A"))
	q.Enqueue(track("B"))
	q.Advance()

	q.Clear()

	if q.Position() != 0 {
		t.Fatalf("position after clear = %v, want 0", q.Position())
	}
	if got := q.Advance(); got != nil {
		t.Fatalf("advance after clear: got %v, want nil", got)
	}
	if q.Repeat != domain.RepeatAll || !q.Shuffle {
		t.Fatal("clear must not alter repeat/shuffle settings")
	}
}

func TestPosition(t *testing.T) {
	q := NewQueue()
	if q.Position() != 0 {
		t.Fatal("position with no current track should be 0")
	}
	q.Enqueue(track("A"))
	q.Advance()
	if q.Position() < 0 || q.Position() > time.Second {
		t.Fatalf("position just after advance = %v", q.Position())
	}
}
