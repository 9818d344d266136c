package hands

import (
	"errors"
	"sort"

	"github.com/cardroom/holdem/cards"
)

// HandRank represents the strength of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (r HandRank) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// ErrNotEnoughCards is returned when fewer than five cards are given
// to Evaluate.
var ErrNotEnoughCards = errors.New("hands: need at least 5 cards to evaluate")

// Evaluation is a categorized five-card hand. Cards holds the five
// selected cards with the combination first and the kickers after,
// in descending rank within each group, so that two evaluations of
// the same rank compare correctly card by card.
type Evaluation struct {
	Rank  HandRank
	Cards cards.Stack
}

// Compare returns -1 if e is weaker than other, 0 if they tie exactly,
// and 1 if e is stronger. Rank dominates; within the same rank the
// packed card sequences are compared element-wise by card rank. Suits
// never break ties.
func (e Evaluation) Compare(other Evaluation) int {
	if e.Rank < other.Rank {
		return -1
	}
	if e.Rank > other.Rank {
		return 1
	}

	for i := 0; i < len(e.Cards) && i < len(other.Cards); i++ {
		if c := compareInt(int(e.Cards[i].Rank), int(other.Cards[i].Rank)); c != 0 {
			return c
		}
	}
	return 0
}

// Beats reports whether e strictly outranks other.
func (e Evaluation) Beats(other Evaluation) bool {
	return e.Compare(other) > 0
}

// Evaluate returns the best five-card hand achievable from 5 to 7
// cards by evaluating every 5-card subset. It is a pure function and
// safe to call concurrently.
func Evaluate(cardSet cards.Stack) (Evaluation, error) {
	if len(cardSet) < 5 {
		return Evaluation{}, ErrNotEnoughCards
	}

	var best Evaluation
	for _, combo := range combinations(len(cardSet), 5) {
		hand := make(cards.Stack, 5)
		for i, idx := range combo {
			hand[i] = cardSet[idx]
		}

		eval := evaluateFive(hand)
		if best.Cards == nil || eval.Compare(best) > 0 {
			best = eval
		}
	}

	return best, nil
}

// evaluateFive classifies a 5-card poker hand and packs its cards for
// tie-break comparison.
func evaluateFive(hand cards.Stack) Evaluation {
	sorted := sortByRankDesc(hand)
	flush := isFlush(sorted)
	straightHigh := straightHighCard(sorted)

	if flush && straightHigh != 0 {
		if straightHigh == cards.Ace {
			return Evaluation{Rank: RoyalFlush, Cards: sorted}
		}
		return Evaluation{Rank: StraightFlush, Cards: packStraight(sorted, straightHigh)}
	}

	counts := rankCounts(sorted)

	if counts[0].count == 4 {
		return Evaluation{Rank: FourOfAKind, Cards: packByRanks(sorted, counts[0].rank)}
	}

	if counts[0].count == 3 && counts[1].count == 2 {
		return Evaluation{Rank: FullHouse, Cards: packByRanks(sorted, counts[0].rank, counts[1].rank)}
	}

	if flush {
		return Evaluation{Rank: Flush, Cards: sorted}
	}

	if straightHigh != 0 {
		return Evaluation{Rank: Straight, Cards: packStraight(sorted, straightHigh)}
	}

	if counts[0].count == 3 {
		return Evaluation{Rank: ThreeOfAKind, Cards: packByRanks(sorted, counts[0].rank)}
	}

	if counts[0].count == 2 && counts[1].count == 2 {
		return Evaluation{Rank: TwoPair, Cards: packByRanks(sorted, counts[0].rank, counts[1].rank)}
	}

	if counts[0].count == 2 {
		return Evaluation{Rank: OnePair, Cards: packByRanks(sorted, counts[0].rank)}
	}

	return Evaluation{Rank: HighCard, Cards: sorted}
}

// sortByRankDesc returns a copy of the hand sorted by rank, highest
// first.
func sortByRankDesc(hand cards.Stack) cards.Stack {
	sorted := hand.Clone()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})
	return sorted
}

// isFlush checks if all cards share one suit
func isFlush(hand cards.Stack) bool {
	if len(hand) == 0 {
		return false
	}

	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}
	return true
}

// straightHighCard returns the high card of a straight, or 0 when the
// hand is not one. Requires the hand sorted by rank descending. The
// wheel (A-2-3-4-5) counts as a straight with high card Five, not Ace.
func straightHighCard(sorted cards.Stack) cards.Rank {
	ranks := make([]cards.Rank, 0, len(sorted))
	for _, card := range sorted {
		if len(ranks) == 0 || ranks[len(ranks)-1] != card.Rank {
			ranks = append(ranks, card.Rank)
		}
	}

	if len(ranks) < 5 {
		return 0
	}

	for i := 0; i+4 < len(ranks); i++ {
		if ranks[i]-ranks[i+4] == 4 {
			return ranks[i]
		}
	}

	if containsRank(ranks, cards.Ace) &&
		containsRank(ranks, cards.Five) &&
		containsRank(ranks, cards.Four) &&
		containsRank(ranks, cards.Three) &&
		containsRank(ranks, cards.Two) {
		return cards.Five
	}

	return 0
}

// packStraight orders a straight for comparison. Straights pack
// highest card first; the wheel moves the ace to the back so it
// compares below every other straight.
func packStraight(sorted cards.Stack, high cards.Rank) cards.Stack {
	if high != cards.Five || sorted[0].Rank != cards.Ace {
		return sorted
	}

	packed := make(cards.Stack, 0, len(sorted))
	packed = append(packed, sorted[1:]...)
	packed = append(packed, sorted[0])
	return packed
}

// packByRanks puts the cards of the given ranks first, in the order
// given, then the remaining cards in descending rank.
func packByRanks(sorted cards.Stack, ranks ...cards.Rank) cards.Stack {
	packed := make(cards.Stack, 0, len(sorted))
	for _, rank := range ranks {
		for _, card := range sorted {
			if card.Rank == rank {
				packed = append(packed, card)
			}
		}
	}

	for _, card := range sorted {
		if !containsRank(ranks, card.Rank) {
			packed = append(packed, card)
		}
	}

	return packed
}

type rankCount struct {
	rank  cards.Rank
	count int
}

// rankCounts tallies the hand by rank, ordered by count descending
// then rank descending.
func rankCounts(hand cards.Stack) []rankCount {
	tally := make(map[cards.Rank]int)
	for _, card := range hand {
		tally[card.Rank]++
	}

	counts := make([]rankCount, 0, len(tally))
	for rank, count := range tally {
		counts = append(counts, rankCount{rank: rank, count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].rank > counts[j].rank
	})

	return counts
}

func containsRank(ranks []cards.Rank, rank cards.Rank) bool {
	for _, r := range ranks {
		if r == rank {
			return true
		}
	}
	return false
}

// combinations generates all k-element index combinations from n
// elements.
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
