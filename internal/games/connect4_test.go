package games

import (
	"errors"
	"testing"
)

func drop(t *testing.T, g *Connect4, p Cell, col int) {
	t.Helper()
	if err := g.ApplyMove(p, Move{Col: col}); err != nil {
		t.Fatalf("drop %v col %d: %v", p, col, err)
	}
}

func TestConnect4HorizontalWin(t *testing.T) {
	g := NewConnect4()
	// A: 0,1,2,3 on the bottom row; B stacks on column 6
	for i := 0; i < 3; i++ {
		drop(t, g, PlayerA, i)
		drop(t, g, PlayerB, 6)
	}
	drop(t, g, PlayerA, 3)

	if !g.IsTerminal() {
		t.Fatal("four in a row should end the game")
	}
	if w, ok := g.Winner(); !ok || w != PlayerA {
		t.Fatalf("winner = %v/%v, want PlayerA", w, ok)
	}
}

func TestConnect4VerticalWin(t *testing.T) {
	g := NewConnect4()
	for i := 0; i < 3; i++ {
		drop(t, g, PlayerA, 0)
		drop(t, g, PlayerB, 1)
	}
	drop(t, g, PlayerA, 0)
	if w, ok := g.Winner(); !ok || w != PlayerA {
		t.Fatalf("winner = %v/%v, want PlayerA", w, ok)
	}
}

func TestConnect4DiagonalWins(t *testing.T) {
	// rising diagonal for A: columns 0..3 with a staircase of B discs under it
	g := NewConnect4()
	moves := []struct {
		p   Cell
		col int
	}{
		{PlayerA, 0},
		{PlayerB, 1}, {PlayerA, 1},
		{PlayerB, 2}, {PlayerA, 6}, {PlayerB, 2}, {PlayerA, 2},
		{PlayerB, 3}, {PlayerA, 3}, {PlayerB, 6}, {PlayerA, 3}, {PlayerB, 5}, {PlayerA, 3},
	}
	for _, mv := range moves {
		drop(t, g, mv.p, mv.col)
	}
	if w, ok := g.Winner(); !ok || w != PlayerA {
		t.Fatalf("winner = %v/%v, want PlayerA on rising diagonal", w, ok)
	}
}

func TestConnect4WinnerIsTheMover(t *testing.T) {
	// the win check must run before the turn switch: the winner is whoever
	// just placed the disc, never inferred from whose turn comes next
	g := NewConnect4()
	for i := 0; i < 3; i++ {
		drop(t, g, PlayerA, i)
		drop(t, g, PlayerB, i)
	}
	drop(t, g, PlayerA, 3)
	if w, ok := g.Winner(); !ok || w != PlayerA {
		t.Fatalf("winner = %v/%v, want the mover (PlayerA)", w, ok)
	}
	if g.Turn() != PlayerA {
		t.Fatal("turn must not switch after a terminal move")
	}
}

func TestConnect4DrawOnFullBoard(t *testing.T) {
	g := NewConnect4()
	// checkerboard with the color scheme shifted every two rows: horizontal
	// runs are 1, vertical runs are 2, diagonal runs are 2
	owner := func(bottomRow, col int) Cell {
		if (col+bottomRow/2)%2 == 0 {
			return PlayerA
		}
		return PlayerB
	}
	for br := 0; br < connect4Rows; br++ {
		for c := 0; c < connect4Cols; c++ {
			g.board[connect4Rows-1-br][c] = owner(br, c)
		}
	}
	// vacate the top of column 6 and replay the final disc through ApplyMove
	g.board[0][6] = Empty
	g.turn = owner(connect4Rows-1, 6)

	if err := g.ApplyMove(g.turn, Move{Col: 6}); err != nil {
		t.Fatal(err)
	}
	if !g.IsTerminal() {
		t.Fatal("full board must be terminal")
	}
	if w, ok := g.Winner(); ok {
		t.Fatalf("draw expected, got winner %v", w)
	}
}

func TestConnect4Rejections(t *testing.T) {
	g := NewConnect4()
	if err := g.ApplyMove(PlayerB, Move{Col: 0}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("got %v, want ErrNotYourTurn", err)
	}
	if err := g.ApplyMove(PlayerA, Move{Col: 7}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if err := g.ApplyMove(PlayerA, Move{Col: -1}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	// fill a column
	for i := 0; i < connect4Rows; i++ {
		p := g.Turn()
		drop(t, g, p, 2)
		if g.IsTerminal() {
			t.Fatal("alternating single-column fills cannot win")
		}
	}
	if err := g.ApplyMove(g.Turn(), Move{Col: 2}); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("got %v, want ErrColumnFull", err)
	}
}

func TestConnect4NoMovesAfterGameOver(t *testing.T) {
	g := NewConnect4()
	for i := 0; i < 3; i++ {
		drop(t, g, PlayerA, 0)
		drop(t, g, PlayerB, 1)
	}
	drop(t, g, PlayerA, 0)
	if err := g.ApplyMove(PlayerB, Move{Col: 1}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("got %v, want ErrGameOver", err)
	}
}
