package server

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cardroom/holdem/game"
)

var timerLogger = log.With().Str("logger_name", "server::timer").Logger()

// armTurnTimer starts the turn clock for one specific turn. The timer
// is a detached goroutine: it sleeps without holding any lock, then
// re-reads the registry and folds the player only if the captured
// table, player and generation still match the live turn. A connection
// closing never cancels it; a stale timer is a no-op.
func (c *Coordinator) armTurnTimer(turn turnRef) {
	timerLogger.Debug().
		Str("table", turn.table).
		Str("player", turn.player).
		Uint64("generation", turn.generation).
		Msg("turn timer armed")

	go func() {
		time.Sleep(c.cfg.TurnTimeout)
		c.autoFold(turn)
	}()
}

// autoFold enforces the turn clock: if the captured turn is still the
// live one and the player has not folded, the player is folded and
// the hand moves on exactly as if they had folded themselves.
func (c *Coordinator) autoFold(turn turnRef) {
	r := c.registry
	var (
		fired    bool
		outcome  actionOutcome
		nextTurn turnRef
	)

	r.mu.Lock()
	if table, ok := r.tables[turn.table]; ok && table.Game != nil {
		g := table.Game
		cp := g.GetCurrentPlayer()
		if g.Generation() == turn.generation &&
			cp != nil && cp.Name == turn.player && cp.State != game.StateFolded {
			seat := g.SeatOf(turn.player)
			if seat >= 0 && g.PlayerActs(seat, game.NewAction(game.ActionFold)) == nil {
				fired = true
				outcome = c.progressLocked(g)
				if outcome.current != "" && outcome.winner == "" {
					nextTurn = turnRef{table: turn.table, player: outcome.current, generation: outcome.generation}
				}
			}
		}
	}
	r.mu.Unlock()

	if !fired {
		timerLogger.Debug().
			Str("table", turn.table).
			Str("player", turn.player).
			Msg("turn timer expired stale")
		return
	}

	timerLogger.Info().
		Str("table", turn.table).
		Str("player", turn.player).
		Msg("player auto-folded on timeout")

	r.send(turn.player, "You did not act in time. Auto-folded.\n")
	if outcome.winner != "" {
		c.notifyWinner(turn.table, outcome.winner, "")
	}
	c.notifyTurnAndArm(nextTurn)
}
