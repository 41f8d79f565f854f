package games

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGameInProgress = errors.New("a game is already running in this channel")
	ErrNoGame         = errors.New("no game is running in this channel")
	ErrNotAPlayer     = errors.New("you are not part of this game")
)

// moveDeadline forfeits a game nobody moves in.
const moveDeadline = 120 * time.Second

// Kind names the supported games.
type Kind string

const (
	KindConnect4  Kind = "connect4"
	KindOthello   Kind = "othello"
	KindTicTacToe Kind = "tictactoe"
)

// Instance is one running game bound to a channel and two user IDs.
type Instance struct {
	ID        string
	ChannelID string
	Kind      Kind
	Game      Game
	PlayerAID string
	PlayerBID string
	Deadline  time.Time
}

// Mark maps a user ID to their cell color, Empty if they're a bystander.
func (in *Instance) Mark(userID string) Cell {
	switch userID {
	case in.PlayerAID:
		return PlayerA
	case in.PlayerBID:
		return PlayerB
	default:
		return Empty
	}
}

// TurnUserID returns the user whose move it is.
func (in *Instance) TurnUserID() string {
	if in.Game.Turn() == PlayerA {
		return in.PlayerAID
	}
	return in.PlayerBID
}

// Manager enforces at most one active game per channel and the move deadline.
type Manager struct {
	mu    sync.Mutex
	games map[string]*Instance
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Instance)}
}

func (m *Manager) Start(channelID string, kind Kind, playerAID, playerBID string) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[channelID]; ok {
		return nil, ErrGameInProgress
	}

	var g Game
	switch kind {
	case KindConnect4:
		g = NewConnect4()
	case KindOthello:
		g = NewOthello()
	case KindTicTacToe:
		g = NewTicTacToe()
	default:
		return nil, errors.New("unknown game kind: " + string(kind))
	}

	in := &Instance{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		Kind:      kind,
		Game:      g,
		PlayerAID: playerAID,
		PlayerBID: playerBID,
		Deadline:  time.Now().Add(moveDeadline),
	}
	m.games[channelID] = in
	return in, nil
}

func (m *Manager) Get(channelID string) (*Instance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.games[channelID]
	return in, ok
}

// Apply performs userID's move. A terminal result removes the game.
func (m *Manager) Apply(channelID, userID string, mv Move) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.games[channelID]
	if !ok {
		return nil, ErrNoGame
	}
	mark := in.Mark(userID)
	if mark == Empty {
		return nil, ErrNotAPlayer
	}
	if err := in.Game.ApplyMove(mark, mv); err != nil {
		return nil, err
	}
	in.Deadline = time.Now().Add(moveDeadline)
	if in.Game.IsTerminal() {
		delete(m.games, channelID)
	}
	return in, nil
}

// Resign ends the game; the opponent wins by forfeit.
func (m *Manager) Resign(channelID, userID string) (*Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.games[channelID]
	if !ok {
		return nil, ErrNoGame
	}
	if in.Mark(userID) == Empty {
		return nil, ErrNotAPlayer
	}
	delete(m.games, channelID)
	return in, nil
}

// Sweep removes games whose move deadline passed and returns them.
func (m *Manager) Sweep(now time.Time) []*Instance {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []*Instance
	for id, in := range m.games {
		if now.After(in.Deadline) {
			delete(m.games, id)
			expired = append(expired, in)
		}
	}
	return expired
}
