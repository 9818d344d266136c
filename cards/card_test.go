package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		// Valid cards with different suit notations
		{"Ace of Spades Unicode", "A♠", Card{Rank: Ace, Suit: Spades}, false},
		{"Ace of Spades lowercase", "As", Card{Rank: Ace, Suit: Spades}, false},
		{"Ace of Spades uppercase", "AS", Card{Rank: Ace, Suit: Spades}, false},
		{"Ten of Hearts Unicode", "10♥", Card{Rank: Ten, Suit: Hearts}, false},
		{"Ten of Hearts short", "Th", Card{Rank: Ten, Suit: Hearts}, false},
		{"Queen of Diamonds Unicode", "Q♦", Card{Rank: Queen, Suit: Diamonds}, false},
		{"Queen of Diamonds lowercase", "Qd", Card{Rank: Queen, Suit: Diamonds}, false},
		{"Two of Clubs Unicode", "2♣", Card{Rank: Two, Suit: Clubs}, false},
		{"Two of Clubs uppercase", "2C", Card{Rank: Two, Suit: Clubs}, false},
		{"King of Hearts", "Kh", Card{Rank: King, Suit: Hearts}, false},
		{"Jack of Hearts", "Jh", Card{Rank: Jack, Suit: Hearts}, false},
		{"Five of Hearts", "5h", Card{Rank: Five, Suit: Hearts}, false},

		// Invalid inputs
		{"Too short input", "A", Card{}, true},
		{"Empty input", "", Card{}, true},
		{"Invalid suit", "10X", Card{}, true},
		{"Invalid rank", "11S", Card{}, true},
		{"Reverse order", "♠A", Card{}, true},
		{"Number too large", "100S", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CardFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err, "CardFromString(%q) should return an error", tt.input)
			} else {
				require.NoError(t, err, "CardFromString(%q) should not return an error", tt.input)
				require.Equal(t, tt.want, got, "CardFromString(%q) should return the correct card", tt.input)
			}
		})
	}
}

func TestRankOrdering(t *testing.T) {
	require.True(t, Ace > King, "Ace should outrank King")
	require.True(t, King > Queen, "King should outrank Queen")
	require.True(t, Three > Two, "Three should outrank Two")
	require.Equal(t, 2, int(Two))
	require.Equal(t, 14, int(Ace))
}

func TestCardString(t *testing.T) {
	require.Equal(t, "A♠", Card{Rank: Ace, Suit: Spades}.String())
	require.Equal(t, "10♥", Card{Rank: Ten, Suit: Hearts}.String())
	require.Equal(t, "2♣", Card{Rank: Two, Suit: Clubs}.String())
}
