package cards

import (
	"math/rand"
	"time"
)

// Deck is a shuffled sequence of 52 unique cards. A deck belongs to
// exactly one game and is recreated fresh at the start of every hand.
type Deck struct {
	cards Stack
}

// NewDeck creates a standard 52-card deck, shuffled uniformly.
func NewDeck() *Deck {
	var stack Stack
	for _, suit := range Suits {
		for _, rank := range Ranks {
			stack = append(stack, Card{Rank: rank, Suit: suit})
		}
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(stack), func(i, j int) {
		stack[i], stack[j] = stack[j], stack[i]
	})

	return &Deck{cards: stack}
}

// Draw removes and returns the top card of the deck. The second return
// value is false once the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
