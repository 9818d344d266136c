package server

import (
	"fmt"
	"strings"

	"github.com/cardroom/holdem/game"
)

// viewOptions carries the one-shot lines appended to a game view.
type viewOptions struct {
	winner     string
	roundEnded bool
}

const availableCommands = "Available commands: BET <amount>, CALL, CHECK, FOLD, ALLIN, SHOW, SHOW_STATE, QUIT"

// sendGameView queues the user's private view of their game: own hole
// cards, pot, community cards, whose turn it is, fold status, and the
// winner when a showdown just resolved. The view is assembled in one
// critical section and sent after the lock is released.
func (c *Coordinator) sendGameView(userID string, opts viewOptions) {
	r := c.registry
	var sb strings.Builder
	inGame := false

	r.mu.Lock()
	g, _ := c.lockedGameFor(userID)
	if g != nil {
		if seat := g.SeatOf(userID); seat >= 0 {
			inGame = true
			player := g.Players[seat]

			fmt.Fprintf(&sb, "Your cards: %s\nPot: %g\nCommunity cards: %s\n",
				player.HoleCards, g.Pot, g.CommunityCards)
			sb.WriteString(availableCommands + "\n")

			if cp := g.GetCurrentPlayer(); cp != nil {
				if cp.Name == userID {
					fmt.Fprintf(&sb, "Current player: %s (you)\n", cp.Name)
				} else {
					fmt.Fprintf(&sb, "Current player: %s\n", cp.Name)
				}
			}

			if player.State == game.StateFolded {
				sb.WriteString("You have folded\n")
			}
			if opts.winner != "" {
				fmt.Fprintf(&sb, "Winner: %s\n", opts.winner)
			}
			if opts.roundEnded {
				sb.WriteString("Betting round ended, next round started\n")
			}
		}
	}
	r.mu.Unlock()

	if !inGame {
		r.send(userID, "You are not in a game\n")
		return
	}
	r.send(userID, sb.String())
}
