package cards

import "strings"

// Stack represents an ordered collection of playing cards
type Stack []Card

func (s Stack) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// Contains checks whether the stack holds the given card.
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Clone returns a copy of the stack sharing no backing storage.
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
