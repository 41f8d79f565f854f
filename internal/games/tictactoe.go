package games

// TicTacToe on a 3x3 grid.
type TicTacToe struct {
	board    [3][3]Cell
	turn     Cell
	moves    int
	terminal bool
	winner   Cell
}

func NewTicTacToe() *TicTacToe {
	return &TicTacToe{turn: PlayerA}
}

func (g *TicTacToe) Turn() Cell       { return g.turn }
func (g *TicTacToe) IsTerminal() bool { return g.terminal }

func (g *TicTacToe) Winner() (Cell, bool) {
	if !g.terminal || g.winner == Empty {
		return Empty, false
	}
	return g.winner, true
}

// the 8 winning triples: 3 rows, 3 columns, 2 diagonals
var tttTriples = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (g *TicTacToe) ApplyMove(p Cell, mv Move) error {
	if g.terminal {
		return ErrGameOver
	}
	if p != g.turn {
		return ErrNotYourTurn
	}
	if mv.Row < 0 || mv.Row > 2 || mv.Col < 0 || mv.Col > 2 {
		return ErrOutOfBounds
	}
	if g.board[mv.Row][mv.Col] != Empty {
		return ErrCellOccupied
	}

	g.board[mv.Row][mv.Col] = p
	g.moves++

	for _, tr := range tttTriples {
		if g.board[tr[0][0]][tr[0][1]] == p &&
			g.board[tr[1][0]][tr[1][1]] == p &&
			g.board[tr[2][0]][tr[2][1]] == p {
			g.terminal = true
			g.winner = p
			return nil
		}
	}
	if g.moves == 9 {
		g.terminal = true
		return nil
	}
	g.turn = p.Opponent()
	return nil
}

// Board returns the grid, row 0 on top.
func (g *TicTacToe) Board() [3][3]Cell { return g.board }
