package game

import (
	"golang.org/x/exp/rand"
)

var suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// NewDeck returns the 52 cards of a standard deck ordered by rank, then suit.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for rank := Two; rank <= Ace; rank++ {
		for _, suit := range suits {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffle permutes deck in place using rng.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// NewShuffledDeck returns a full deck shuffled with a generator seeded by seed.
// The same seed always produces the same order.
func NewShuffledDeck(seed uint64) []Card {
	deck := NewDeck()
	Shuffle(deck, rand.New(rand.NewSource(seed)))
	return deck
}
