package games

const (
	connect4Cols = 7
	connect4Rows = 6
)

// Connect4 is the classic 7x6 drop game. A move names a column; the disc
// falls to the lowest empty row.
type Connect4 struct {
	board    [connect4Rows][connect4Cols]Cell
	turn     Cell
	terminal bool
	winner   Cell
}

func NewConnect4() *Connect4 {
	return &Connect4{turn: PlayerA}
}

func (g *Connect4) Turn() Cell       { return g.turn }
func (g *Connect4) IsTerminal() bool { return g.terminal }

func (g *Connect4) Winner() (Cell, bool) {
	if !g.terminal || g.winner == Empty {
		return Empty, false
	}
	return g.winner, true
}

func (g *Connect4) ApplyMove(p Cell, mv Move) error {
	if g.terminal {
		return ErrGameOver
	}
	if p != g.turn {
		return ErrNotYourTurn
	}
	if mv.Col < 0 || mv.Col >= connect4Cols {
		return ErrOutOfBounds
	}

	row := -1
	for r := connect4Rows - 1; r >= 0; r-- {
		if g.board[r][mv.Col] == Empty {
			row = r
			break
		}
	}
	if row < 0 {
		return ErrColumnFull
	}
	g.board[row][mv.Col] = p

	// win check runs for the mover right after placement, before the turn
	// switch, so the winner is always the player who just moved
	if g.connects4(row, mv.Col, p) {
		g.terminal = true
		g.winner = p
		return nil
	}
	if g.full() {
		g.terminal = true
		return nil
	}
	g.turn = p.Opponent()
	return nil
}

// connects4 scans the four direction axes through the just-placed disc.
func (g *Connect4) connects4(row, col int, p Cell) bool {
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		for _, sign := range []int{1, -1} {
			r, c := row+sign*d[0], col+sign*d[1]
			for r >= 0 && r < connect4Rows && c >= 0 && c < connect4Cols && g.board[r][c] == p {
				count++
				r += sign * d[0]
				c += sign * d[1]
			}
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

func (g *Connect4) full() bool {
	for c := 0; c < connect4Cols; c++ {
		if g.board[0][c] == Empty {
			return false
		}
	}
	return true
}

// Board returns the grid, row 0 on top.
func (g *Connect4) Board() [connect4Rows][connect4Cols]Cell { return g.board }
