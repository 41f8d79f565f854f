package games

import "errors"

// Cell is one square on a board. PlayerA always moves first.
type Cell int

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Move addresses a board position. Connect-4 only reads Col; the other games
// read both.
type Move struct {
	Row int
	Col int
}

var (
	ErrNotYourTurn  = errors.New("not your turn")
	ErrOutOfBounds  = errors.New("move is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNoCapture    = errors.New("move would not flip any opposing discs")
	ErrColumnFull   = errors.New("column is full")
	ErrGameOver     = errors.New("game is already over")
)

// Game is the common contract for every board game. Implementations reject
// illegal moves with one of the errors above and never mutate state on
// rejection.
type Game interface {
	// ApplyMove places for p and, on success, advances the turn.
	ApplyMove(p Cell, mv Move) error
	IsTerminal() bool
	// Winner reports the winning player; the second result is false for a
	// draw or an unfinished game.
	Winner() (Cell, bool)
	Turn() Cell
}
