package music

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestQuorum(t *testing.T) {
	cases := []struct{ occupants, want int }{
		{1, 1}, {2, 2}, {3, 2}, {4, 3}, {5, 3}, {10, 6}, {0, 1},
	}
	for _, c := range cases {
		if got := Quorum(c.occupants); got != c.want {
			t.Errorf("Quorum(%d) = %d, want %d", c.occupants, got, c.want)
		}
	}
}

func startPlaying(t *testing.T) (*Player, *fakeSink) {
	t.Helper()
	res := newFakeResolver()
	res.add("https://example.com/pl", "A", "B")
	sink := newFakeSink()
	p, _, _ := newTestPlayer(res, sink)
	if _, err := p.Enqueue(context.Background(), "g1", "vc1", "ch1", "u1", "https://example.com/pl"); err != nil {
		t.Fatal(err)
	}
	return p, sink
}

func TestVoteSkipReachesQuorum(t *testing.T) {
	p, _ := startPlaying(t)

	// occupancy 5 -> quorum 3
	d, err := p.VoteSkip("g1", "v1", 5)
	if err != nil || d.Skipped || d.Votes != 1 || d.Required != 3 {
		t.Fatalf("vote 1: %+v err=%v", d, err)
	}
	d, _ = p.VoteSkip("g1", "v2", 5)
	if d.Skipped || d.Votes != 2 {
		t.Fatalf("vote 2: %+v", d)
	}
	d, _ = p.VoteSkip("g1", "v3", 5)
	if !d.Skipped || d.Votes != 3 {
		t.Fatalf("vote 3 should skip: %+v", d)
	}
	waitFor(t, func() bool { s := p.Snapshot("g1"); return s.Current != nil && s.Current.Title == "B" })
}

func TestVoteSkipDuplicateIsNoOp(t *testing.T) {
	p, _ := startPlaying(t)

	if d, _ := p.VoteSkip("g1", "v1", 4); d.Votes != 1 || d.Required != 3 {
		t.Fatalf("first vote: %+v", d)
	}
	d, err := p.VoteSkip("g1", "v1", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Duplicate || d.Votes != 1 || d.Skipped {
		t.Fatalf("duplicate vote must not change tally: %+v", d)
	}
}

func TestVoteSkipSoleOccupantSkipsImmediately(t *testing.T) {
	p, _ := startPlaying(t)
	d, err := p.VoteSkip("g1", "v1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Skipped || d.Required != 1 {
		t.Fatalf("sole occupant should skip at once: %+v", d)
	}
}

func TestVotesResetOnTrackTransition(t *testing.T) {
	p, sink := startPlaying(t)

	if d, _ := p.VoteSkip("g1", "v1", 5); d.Votes != 1 {
		t.Fatal("expected first ballot")
	}
	// natural advance to B clears the ballot
	sink.finish()
	waitFor(t, func() bool { s := p.Snapshot("g1"); return s.Current != nil && s.Current.Title == "B" })

	d, err := p.VoteSkip("g1", "v1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if d.Duplicate || d.Votes != 1 {
		t.Fatalf("ballot should be empty after transition: %+v", d)
	}
}

func TestVoteSkipQuorumRecomputedPerCall(t *testing.T) {
	p, _ := startPlaying(t)

	if d, _ := p.VoteSkip("g1", "v1", 10); d.Required != 6 {
		t.Fatalf("required = %d, want 6", d.Required)
	}
	// occupancy dropped between votes; quorum shrinks with it
	d, _ := p.VoteSkip("g1", "v2", 3)
	if d.Required != 2 {
		t.Fatalf("required = %d, want 2", d.Required)
	}
	if !d.Skipped {
		t.Fatalf("2 votes with quorum 2 should skip: %+v", d)
	}
}

func TestVoteSkipWhileIdle(t *testing.T) {
	res := newFakeResolver()
	p, _, _ := newTestPlayer(res, newFakeSink())
	if _, err := p.VoteSkip("g1", "v1", 3); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("got %v, want ErrNotPlaying", err)
	}
}

func ExampleQuorum() {
	fmt.Println(Quorum(4))
	// Output: 3
}
