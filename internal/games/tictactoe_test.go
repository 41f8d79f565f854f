package games

import (
	"errors"
	"testing"
)

func TestTicTacToeAllWinningTriples(t *testing.T) {
	triples := [][3]Move{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
	// filler cells for B, guaranteed not to complete a B triple in two moves
	// and not to collide with any single winning triple's cells
	for _, tr := range triples {
		g := NewTicTacToe()
		used := map[Move]bool{tr[0]: true, tr[1]: true, tr[2]: true}
		var fill []Move
		for r := 0; r < 3 && len(fill) < 2; r++ {
			for c := 0; c < 3 && len(fill) < 2; c++ {
				mv := Move{Row: r, Col: c}
				if !used[mv] {
					fill = append(fill, mv)
				}
			}
		}
		moves := []Move{tr[0], fill[0], tr[1], fill[1], tr[2]}
		for i, mv := range moves {
			p := PlayerA
			if i%2 == 1 {
				p = PlayerB
			}
			if err := g.ApplyMove(p, mv); err != nil {
				t.Fatalf("triple %v move %d: %v", tr, i, err)
			}
		}
		if w, ok := g.Winner(); !ok || w != PlayerA {
			t.Fatalf("triple %v: winner = %v/%v, want PlayerA", tr, w, ok)
		}
	}
}

func TestTicTacToeDraw(t *testing.T) {
	g := NewTicTacToe()
	moves := []struct {
		p  Cell
		mv Move
	}{
		{PlayerA, Move{0, 0}}, {PlayerB, Move{1, 1}},
		{PlayerA, Move{0, 1}}, {PlayerB, Move{0, 2}},
		{PlayerA, Move{2, 0}}, {PlayerB, Move{1, 0}},
		{PlayerA, Move{1, 2}}, {PlayerB, Move{2, 1}},
		{PlayerA, Move{2, 2}},
	}
	for i, m := range moves {
		if err := g.ApplyMove(m.p, m.mv); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if i < len(moves)-1 && g.IsTerminal() {
			t.Fatalf("game ended early at move %d", i)
		}
	}
	if !g.IsTerminal() {
		t.Fatal("full board must be terminal")
	}
	if w, ok := g.Winner(); ok {
		t.Fatalf("draw expected, got winner %v", w)
	}
}

func TestTicTacToeRejections(t *testing.T) {
	g := NewTicTacToe()
	if err := g.ApplyMove(PlayerB, Move{0, 0}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("got %v, want ErrNotYourTurn", err)
	}
	if err := g.ApplyMove(PlayerA, Move{3, 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if err := g.ApplyMove(PlayerA, Move{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.ApplyMove(PlayerB, Move{0, 0}); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("got %v, want ErrCellOccupied", err)
	}
}
