package game

import (
	"github.com/rs/zerolog/log"

	"github.com/cardroom/holdem/cards"
	"github.com/cardroom/holdem/hands"
)

var gameLogger = log.With().Str("logger_name", "game::game").Logger()

// Street represents a betting round of a hand
type Street string

const (
	PreFlop  Street = "preflop"
	Flop     Street = "flop"
	Turn     Street = "turn"
	River    Street = "river"
	Showdown Street = "showdown"
)

// Game is the per-table betting state machine. Seat order is fixed at
// creation; there is at most one live Game per table and it is
// replaced wholesale on every new hand request. Game is not
// goroutine-safe: the table coordinator serializes all access.
type Game struct {
	Players        []*Player
	Deck           *cards.Deck
	CurrentPlayer  int
	CurrentRound   Street
	CommunityCards cards.Stack
	Pot            float64
	CurrentBet     float64
	DealerPosition int
	SmallBlind     float64
	BigBlind       float64

	activeSeats []int
	generation  uint64
}

// New creates an empty game with the given blinds.
func New(smallBlind, bigBlind float64) *Game {
	return &Game{
		Deck:         cards.NewDeck(),
		CurrentRound: PreFlop,
		SmallBlind:   smallBlind,
		BigBlind:     bigBlind,
	}
}

// AddPlayer seats a player. Seat order follows insertion order.
func (g *Game) AddPlayer(name string, balance float64) {
	g.Players = append(g.Players, NewPlayer(name, balance))
}

// Generation identifies the current turn. It advances on every new
// hand and every turn change, so detached turn timers can detect that
// the state they captured has gone stale.
func (g *Game) Generation() uint64 {
	return g.generation
}

// StartNewHand resets the table for a fresh hand: new shuffled deck,
// cleared pot and board, dealer button advanced one seat, blinds
// posted, two hole cards dealt per player.
func (g *Game) StartNewHand() error {
	if len(g.Players) < 2 {
		return ErrInsufficientPlayers
	}

	g.Deck = cards.NewDeck()
	g.CommunityCards = nil
	g.Pot = 0
	g.CurrentBet = 0
	g.CurrentRound = PreFlop

	for _, player := range g.Players {
		player.ResetForNewHand()
	}

	g.DealerPosition = (g.DealerPosition + 1) % len(g.Players)

	g.postBlinds()
	g.dealHoleCards()
	g.updateActiveSeats()

	// First to act sits three seats past the dealer. Heads-up tables
	// get no special blind or act order.
	g.CurrentPlayer = (g.DealerPosition + 3) % len(g.Players)
	g.generation++

	gameLogger.Debug().
		Int("dealer", g.DealerPosition).
		Int("firstToAct", g.CurrentPlayer).
		Uint64("generation", g.generation).
		Msg("new hand started")

	return nil
}

// postBlinds collects the forced bets. A player who cannot cover a
// blind simply does not post it.
func (g *Game) postBlinds() {
	smallBlindSeat := (g.DealerPosition + 1) % len(g.Players)
	bigBlindSeat := (g.DealerPosition + 2) % len(g.Players)

	if err := g.Players[smallBlindSeat].Bet(g.SmallBlind); err == nil {
		g.Pot += g.SmallBlind
	}

	if err := g.Players[bigBlindSeat].Bet(g.BigBlind); err == nil {
		g.Pot += g.BigBlind
		g.CurrentBet = g.BigBlind
	}
}

// dealHoleCards gives each player two cards, one at a time around the
// table.
func (g *Game) dealHoleCards() {
	for i := 0; i < 2; i++ {
		for _, player := range g.Players {
			if card, ok := g.Deck.Draw(); ok {
				player.AddCard(card)
			}
		}
	}
}

// updateActiveSeats recomputes the seats still contesting the pot.
func (g *Game) updateActiveSeats() {
	g.activeSeats = g.activeSeats[:0]
	for seat, player := range g.Players {
		if player.State == StateActive || player.State == StateAllIn {
			g.activeSeats = append(g.activeSeats, seat)
		}
	}
}

// PlayerActs applies one validated action for the given seat. All
// failures are local: the returned error describes the rejection and
// the game state is left unchanged for that attempt.
func (g *Game) PlayerActs(seat int, action Action) error {
	if seat < 0 || seat >= len(g.Players) {
		return ErrInvalidPlayerIndex
	}

	player := g.Players[seat]

	switch action.Kind {
	case ActionFold:
		player.Fold()
		g.updateActiveSeats()

	case ActionCheck:
		if g.CurrentBet > player.ChipsInPlay {
			return ErrIllegalCheck
		}
		player.Check()

	case ActionCall:
		callAmount := g.CurrentBet - player.ChipsInPlay
		if callAmount > 0 {
			if err := player.Call(callAmount); err != nil {
				return err
			}
			g.Pot += callAmount
		} else {
			// Nothing to call; a call with no outstanding bet is a check.
			player.Check()
		}

	case ActionRaise:
		totalNeeded := g.CurrentBet + action.Amount
		if err := player.Raise(action.Amount); err != nil {
			return err
		}
		g.Pot += action.Amount
		g.CurrentBet = totalNeeded
		// Everyone else has to respond to the raise.
		g.resetOtherPlayerActions(seat)

	case ActionAllIn:
		amount := player.AllIn()
		g.Pot += amount
		if player.ChipsInPlay > g.CurrentBet {
			g.CurrentBet = player.ChipsInPlay
			g.resetOtherPlayerActions(seat)
		}
		g.updateActiveSeats()
	}

	return nil
}

// resetOtherPlayerActions clears the recorded action of every active
// player except the raiser, forcing them to act again.
func (g *Game) resetOtherPlayerActions(raiserSeat int) {
	for seat, player := range g.Players {
		if seat != raiserSeat && player.State == StateActive {
			player.LastAction = nil
		}
	}
}

// resetPlayerActions clears every recorded action at the start of a
// new street.
func (g *Game) resetPlayerActions() {
	for _, player := range g.Players {
		player.LastAction = nil
	}
}

// NextPlayer advances the turn to the next seat still able to act,
// skipping folded and all-in players. Call only while the betting
// round is incomplete.
func (g *Game) NextPlayer() {
	for i := 0; i < len(g.Players); i++ {
		g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
		if g.Players[g.CurrentPlayer].State == StateActive {
			break
		}
	}
	g.generation++
}

// IsBettingRoundComplete reports whether the current street is done:
// at most one active player remains, or every active player has acted
// and all active bets are level. Folded and all-in players never block
// completion.
func (g *Game) IsBettingRoundComplete() bool {
	active := make([]*Player, 0, len(g.Players))
	for _, player := range g.Players {
		if player.State == StateActive {
			active = append(active, player)
		}
	}

	if len(active) <= 1 {
		return true
	}

	firstBet := active[0].ChipsInPlay
	for _, player := range active {
		if player.LastAction == nil || player.ChipsInPlay != firstBet {
			return false
		}
	}
	return true
}

// DealFlop burns one card and deals the three flop cards.
func (g *Game) DealFlop() {
	if g.CurrentRound != PreFlop {
		return
	}

	g.Deck.Draw()
	for i := 0; i < 3; i++ {
		if card, ok := g.Deck.Draw(); ok {
			g.CommunityCards = append(g.CommunityCards, card)
		}
	}

	g.CurrentRound = Flop
	g.startNewStreet()
}

// DealTurn burns one card and deals the turn card.
func (g *Game) DealTurn() {
	if g.CurrentRound != Flop {
		return
	}

	g.Deck.Draw()
	if card, ok := g.Deck.Draw(); ok {
		g.CommunityCards = append(g.CommunityCards, card)
	}

	g.CurrentRound = Turn
	g.startNewStreet()
}

// DealRiver burns one card and deals the river card.
func (g *Game) DealRiver() {
	if g.CurrentRound != Turn {
		return
	}

	g.Deck.Draw()
	if card, ok := g.Deck.Draw(); ok {
		g.CommunityCards = append(g.CommunityCards, card)
	}

	g.CurrentRound = River
	g.startNewStreet()
}

func (g *Game) startNewStreet() {
	g.CurrentBet = 0
	g.resetPlayerActions()
	g.generation++
}

// AdvanceStreet moves a hand with a completed betting round forward:
// preflop to flop, flop to turn, turn to river, and from the river
// into the showdown. The second return value reports whether a
// showdown was run and decided.
func (g *Game) AdvanceStreet() (ShowdownResult, bool) {
	switch g.CurrentRound {
	case PreFlop:
		g.DealFlop()
	case Flop:
		g.DealTurn()
	case Turn:
		g.DealRiver()
	case River:
		return g.RunShowdown()
	}
	return ShowdownResult{}, false
}

// ShowdownResult names the winning player and the hand that won.
type ShowdownResult struct {
	Seat int
	Name string
	Hand hands.Evaluation
}

// RunShowdown evaluates every non-folded player's hole cards together
// with the board and declares the single best hand the winner. Exact
// ties go to the first seat encountered; the pot is never split.
func (g *Game) RunShowdown() (ShowdownResult, bool) {
	g.CurrentRound = Showdown
	g.generation++

	var winner ShowdownResult
	found := false
	for seat, player := range g.Players {
		if player.State == StateFolded {
			continue
		}

		all := player.HoleCards.Clone()
		all = append(all, g.CommunityCards...)
		eval, err := hands.Evaluate(all)
		if err != nil {
			continue
		}

		if !found || eval.Beats(winner.Hand) {
			winner = ShowdownResult{Seat: seat, Name: player.Name, Hand: eval}
			found = true
		}
	}

	if found {
		gameLogger.Info().
			Str("winner", winner.Name).
			Str("hand", winner.Hand.Rank.String()).
			Float64("pot", g.Pot).
			Msg("showdown decided")
	}

	return winner, found
}

// AwardPot credits the whole pot to the given seat and clears it.
func (g *Game) AwardPot(seat int) {
	if seat < 0 || seat >= len(g.Players) {
		return
	}

	g.Players[seat].CollectWinnings(g.Pot)
	g.Pot = 0
}

// GetCurrentPlayer returns the player whose turn it is.
func (g *Game) GetCurrentPlayer() *Player {
	if g.CurrentPlayer < 0 || g.CurrentPlayer >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayer]
}

// SeatOf resolves a player name to a seat index, or -1.
func (g *Game) SeatOf(name string) int {
	for seat, player := range g.Players {
		if player.Name == name {
			return seat
		}
	}
	return -1
}

// ActiveSeats returns the seats still contesting the pot (active or
// all-in).
func (g *Game) ActiveSeats() []int {
	seats := make([]int, len(g.activeSeats))
	copy(seats, g.activeSeats)
	return seats
}
