package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/harukit/melodybot/internal/games"
)

func (r *Router) gamesAllowed(ctx context.Context, guildID string) bool {
	st, err := r.settings.Get(ctx, guildID)
	if err != nil {
		return true
	}
	return st.GamesEnabled
}

func (r *Router) handleGameStart(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, name string) {
	if !r.gamesAllowed(ctx, ic.GuildID) {
		ReplyEphemeral(s, ic, "Games are disabled on this server.")
		return
	}
	challengerID := ic.Member.User.ID
	opponentID, ok := optUserID(ic, "opponent")
	if !ok || opponentID == challengerID {
		ReplyEphemeral(s, ic, "Pick someone else to play against.")
		return
	}

	var kind games.Kind
	switch name {
	case "connect4":
		kind = games.KindConnect4
	case "othello":
		kind = games.KindOthello
	case "tictactoe":
		kind = games.KindTicTacToe
	}

	in, err := r.games.Start(ic.ChannelID, kind, challengerID, opponentID)
	if err != nil {
		if errors.Is(err, games.ErrGameInProgress) {
			ReplyEphemeral(s, ic, "A game is already running in this channel. Finish it or `/resign`.")
			return
		}
		ReplyEphemeral(s, ic, "⚠️ Couldn't start the game: "+err.Error())
		return
	}

	ReplyPublic(s, ic, fmt.Sprintf("<@%s> challenged <@%s> to **%s**!\n\n%s\n%s goes first: <@%s>",
		challengerID, opponentID, gameTitle(kind),
		renderBoard(in), markEmoji(in.Kind, games.PlayerA), in.PlayerAID))
}

func (r *Router) handleGameMove(s *discordgo.Session, ic *discordgo.InteractionCreate, name string) {
	userID := ic.Member.User.ID

	var mv games.Move
	if name == "drop" {
		col, _ := optInt(ic, "column")
		mv = games.Move{Col: col - 1}
	} else {
		row, _ := optInt(ic, "row")
		col, _ := optInt(ic, "column")
		mv = games.Move{Row: row - 1, Col: col - 1}
	}

	in, err := r.games.Apply(ic.ChannelID, userID, mv)
	if err != nil {
		ReplyEphemeral(s, ic, moveErrorMessage(err))
		return
	}

	if in.Game.IsTerminal() {
		ReplyPublic(s, ic, renderBoard(in)+"\n"+resultLine(in))
		return
	}
	ReplyPublic(s, ic, fmt.Sprintf("%s\n%s to move: <@%s>",
		renderBoard(in), markEmoji(in.Kind, in.Game.Turn()), in.TurnUserID()))
}

func (r *Router) handleResign(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	userID := ic.Member.User.ID
	in, err := r.games.Resign(ic.ChannelID, userID)
	if err != nil {
		ReplyEphemeral(s, ic, moveErrorMessage(err))
		return
	}
	winnerID := in.PlayerAID
	if userID == in.PlayerAID {
		winnerID = in.PlayerBID
	}
	ReplyPublic(s, ic, fmt.Sprintf("🏳️ <@%s> resigned. <@%s> wins!", userID, winnerID))
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, games.ErrNoGame):
		return "No game is running in this channel."
	case errors.Is(err, games.ErrNotAPlayer):
		return "You're not part of this game."
	case errors.Is(err, games.ErrNotYourTurn):
		return "It's not your turn."
	case errors.Is(err, games.ErrOutOfBounds):
		return "That spot is off the board."
	case errors.Is(err, games.ErrCellOccupied):
		return "That spot is taken."
	case errors.Is(err, games.ErrColumnFull):
		return "That column is full."
	case errors.Is(err, games.ErrNoCapture):
		return "That move wouldn't flip any discs."
	default:
		return "⚠️ " + err.Error()
	}
}

// SweepExpiredGames forfeits games nobody moved in and tells their channels.
// Driven by a ticker in main.
func (r *Router) SweepExpiredGames(now time.Time) {
	for _, in := range r.games.Sweep(now) {
		loserID := in.TurnUserID()
		winnerID := in.PlayerAID
		if loserID == in.PlayerAID {
			winnerID = in.PlayerBID
		}
		msg := fmt.Sprintf("⏰ <@%s> took too long to move. <@%s> wins by timeout!", loserID, winnerID)
		if _, err := r.s.ChannelMessageSend(in.ChannelID, msg); err != nil {
			r.log.Warn().Str("channel_id", in.ChannelID).Err(err).Msg("game timeout message failed")
		}
	}
}

func gameTitle(k games.Kind) string {
	switch k {
	case games.KindConnect4:
		return "Connect Four"
	case games.KindOthello:
		return "Othello"
	default:
		return "Tic-Tac-Toe"
	}
}

func markEmoji(k games.Kind, c games.Cell) string {
	switch k {
	case games.KindConnect4:
		if c == games.PlayerA {
			return "🔴"
		}
		return "🟡"
	case games.KindOthello:
		if c == games.PlayerA {
			return "⚫"
		}
		return "⚪"
	default:
		if c == games.PlayerA {
			return "❌"
		}
		return "⭕"
	}
}

func resultLine(in *games.Instance) string {
	if w, ok := in.Game.Winner(); ok {
		winnerID := in.PlayerAID
		if w == games.PlayerB {
			winnerID = in.PlayerBID
		}
		line := fmt.Sprintf("🏆 %s <@%s> wins!", markEmoji(in.Kind, w), winnerID)
		if o, isOthello := in.Game.(*games.Othello); isOthello {
			a, b := o.Score()
			line += fmt.Sprintf(" Final score %d-%d.", a, b)
		}
		return line
	}
	if o, ok := in.Game.(*games.Othello); ok {
		a, b := o.Score()
		return fmt.Sprintf("🤝 It's a draw, %d-%d.", a, b)
	}
	return "🤝 It's a draw."
}

func renderBoard(in *games.Instance) string {
	var b strings.Builder
	switch g := in.Game.(type) {
	case *games.Connect4:
		board := g.Board()
		b.WriteString("1️⃣2️⃣3️⃣4️⃣5️⃣6️⃣7️⃣\n")
		for row := range board {
			for _, c := range board[row] {
				b.WriteString(cellEmoji(in.Kind, c))
			}
			b.WriteByte('\n')
		}
	case *games.Othello:
		board := g.Board()
		for row := range board {
			for _, c := range board[row] {
				b.WriteString(cellEmoji(in.Kind, c))
			}
			b.WriteByte('\n')
		}
	case *games.TicTacToe:
		board := g.Board()
		for row := range board {
			for _, c := range board[row] {
				b.WriteString(cellEmoji(in.Kind, c))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellEmoji(k games.Kind, c games.Cell) string {
	if c != games.Empty {
		return markEmoji(k, c)
	}
	switch k {
	case games.KindOthello:
		return "🟩"
	default:
		return "⬜"
	}
}
