package game

import "errors"

var (
	// ErrInsufficientPlayers occurs when a hand is started with fewer
	// than two players at the table.
	ErrInsufficientPlayers = errors.New("game: need at least 2 players to start a hand")

	// ErrInvalidPlayerIndex occurs when an action names a seat that
	// does not exist.
	ErrInvalidPlayerIndex = errors.New("game: invalid player index")

	// ErrInsufficientFunds occurs when a player attempts to wager more
	// chips than their balance holds.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrInvalidAmount occurs when a player attempts to wager a
	// non-positive amount.
	ErrInvalidAmount = errors.New("game: bet amount must be positive")

	// ErrIllegalCheck occurs when a player checks while facing an
	// outstanding bet.
	ErrIllegalCheck = errors.New("game: cannot check when there's a bet to call")
)
