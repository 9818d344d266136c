package game

import "github.com/cardroom/holdem/cards"

// PlayerState represents a player's standing within the current hand.
type PlayerState string

const (
	StateActive     PlayerState = "active"
	StateFolded     PlayerState = "folded"
	StateAllIn      PlayerState = "all-in"
	StateSittingOut PlayerState = "sitting-out"
)

// Player is a participant in a game. Balance holds the chips not
// currently wagered; ChipsInPlay the chips committed during the
// current betting street.
type Player struct {
	Name        string
	Balance     float64
	HoleCards   cards.Stack
	ChipsInPlay float64
	State       PlayerState
	LastAction  *Action
}

// NewPlayer creates an active player with the given stack.
func NewPlayer(name string, balance float64) *Player {
	return &Player{
		Name:    name,
		Balance: balance,
		State:   StateActive,
	}
}

// AddCard deals one hole card to the player.
func (p *Player) AddCard(card cards.Card) {
	p.HoleCards = append(p.HoleCards, card)
}

// Bet moves chips from the player's balance into play.
func (p *Player) Bet(amount float64) error {
	if amount > p.Balance {
		return ErrInsufficientFunds
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	p.Balance -= amount
	p.ChipsInPlay += amount
	return nil
}

// Fold takes the player out of the hand.
func (p *Player) Fold() {
	p.State = StateFolded
	action := NewAction(ActionFold)
	p.LastAction = &action
}

// Check records a check without moving chips.
func (p *Player) Check() {
	action := NewAction(ActionCheck)
	p.LastAction = &action
}

// Call wagers the amount needed to match the current bet.
func (p *Player) Call(amount float64) error {
	if err := p.Bet(amount); err != nil {
		return err
	}
	action := NewAction(ActionCall)
	p.LastAction = &action
	return nil
}

// Raise wagers the given amount on top of the current bet.
func (p *Player) Raise(amount float64) error {
	if err := p.Bet(amount); err != nil {
		return err
	}
	action := Action{Kind: ActionRaise, Amount: amount}
	p.LastAction = &action
	return nil
}

// AllIn wagers the player's entire remaining balance and returns the
// amount moved into play.
func (p *Player) AllIn() float64 {
	amount := p.Balance
	p.Balance = 0
	p.ChipsInPlay += amount
	p.State = StateAllIn
	action := NewAction(ActionAllIn)
	p.LastAction = &action
	return amount
}

// CollectWinnings credits a won pot to the player's balance.
func (p *Player) CollectWinnings(amount float64) {
	p.Balance += amount
	p.ChipsInPlay = 0
}

// ResetForNewHand clears per-hand state, keeping the balance.
func (p *Player) ResetForNewHand() {
	p.HoleCards = nil
	p.ChipsInPlay = 0
	p.State = StateActive
	p.LastAction = nil
}
