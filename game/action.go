package game

import "fmt"

// ActionKind enumerates the actions a player can take at the table.
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all-in"
)

// Action is a player action. Amount is meaningful only for raises and
// is validated at construction, never deeper in the state machine.
type Action struct {
	Kind   ActionKind
	Amount float64
}

// NewAction builds an amount-less action.
func NewAction(kind ActionKind) Action {
	return Action{Kind: kind}
}

// NewRaise builds a raise action, rejecting non-positive amounts.
func NewRaise(amount float64) (Action, error) {
	if amount <= 0 {
		return Action{}, ErrInvalidAmount
	}
	return Action{Kind: ActionRaise, Amount: amount}, nil
}

func (a Action) String() string {
	if a.Kind == ActionRaise {
		return fmt.Sprintf("%s %g", a.Kind, a.Amount)
	}
	return string(a.Kind)
}
