package games

const othelloSize = 8

// Othello (Reversi) on the standard 8x8 board. A move must flip at least one
// opposing run; a player with no legal move passes automatically.
type Othello struct {
	board    [othelloSize][othelloSize]Cell
	turn     Cell
	terminal bool
	winner   Cell
}

func NewOthello() *Othello {
	g := &Othello{turn: PlayerA}
	g.board[3][3] = PlayerB
	g.board[3][4] = PlayerA
	g.board[4][3] = PlayerA
	g.board[4][4] = PlayerB
	return g
}

func (g *Othello) Turn() Cell       { return g.turn }
func (g *Othello) IsTerminal() bool { return g.terminal }

func (g *Othello) Winner() (Cell, bool) {
	if !g.terminal || g.winner == Empty {
		return Empty, false
	}
	return g.winner, true
}

var othelloDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (g *Othello) ApplyMove(p Cell, mv Move) error {
	if g.terminal {
		return ErrGameOver
	}
	if p != g.turn {
		return ErrNotYourTurn
	}
	if mv.Row < 0 || mv.Row >= othelloSize || mv.Col < 0 || mv.Col >= othelloSize {
		return ErrOutOfBounds
	}
	if g.board[mv.Row][mv.Col] != Empty {
		return ErrCellOccupied
	}

	flips := g.flipsFor(p, mv.Row, mv.Col)
	if len(flips) == 0 {
		return ErrNoCapture
	}

	g.board[mv.Row][mv.Col] = p
	for _, f := range flips {
		g.board[f[0]][f[1]] = p
	}

	opp := p.Opponent()
	switch {
	case g.hasLegalMove(opp):
		g.turn = opp
	case g.hasLegalMove(p):
		// opponent passes; the mover goes again
	default:
		g.finish()
	}
	return nil
}

// flipsFor collects every opposing disc the move at (row, col) would flip.
func (g *Othello) flipsFor(p Cell, row, col int) [][2]int {
	opp := p.Opponent()
	var flips [][2]int
	for _, d := range othelloDirs {
		var run [][2]int
		r, c := row+d[0], col+d[1]
		for r >= 0 && r < othelloSize && c >= 0 && c < othelloSize && g.board[r][c] == opp {
			run = append(run, [2]int{r, c})
			r += d[0]
			c += d[1]
		}
		if len(run) > 0 && r >= 0 && r < othelloSize && c >= 0 && c < othelloSize && g.board[r][c] == p {
			flips = append(flips, run...)
		}
	}
	return flips
}

func (g *Othello) hasLegalMove(p Cell) bool {
	for r := 0; r < othelloSize; r++ {
		for c := 0; c < othelloSize; c++ {
			if g.board[r][c] == Empty && len(g.flipsFor(p, r, c)) > 0 {
				return true
			}
		}
	}
	return false
}

// LegalMoves lists every playable position for p, row-major.
func (g *Othello) LegalMoves(p Cell) []Move {
	var out []Move
	for r := 0; r < othelloSize; r++ {
		for c := 0; c < othelloSize; c++ {
			if g.board[r][c] == Empty && len(g.flipsFor(p, r, c)) > 0 {
				out = append(out, Move{Row: r, Col: c})
			}
		}
	}
	return out
}

// finish ends the game by disc count; equal counts are a draw.
func (g *Othello) finish() {
	g.terminal = true
	a, b := g.Score()
	switch {
	case a > b:
		g.winner = PlayerA
	case b > a:
		g.winner = PlayerB
	}
}

// Score returns the disc counts for PlayerA and PlayerB.
func (g *Othello) Score() (int, int) {
	var a, b int
	for r := 0; r < othelloSize; r++ {
		for c := 0; c < othelloSize; c++ {
			switch g.board[r][c] {
			case PlayerA:
				a++
			case PlayerB:
				b++
			}
		}
	}
	return a, b
}

// Board returns the grid, row 0 on top.
func (g *Othello) Board() [othelloSize][othelloSize]Cell { return g.board }
