package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()

	require.Len(t, deck, DeckSize)
	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		require.True(t, c.Rank.Valid())
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	require.Equal(t, NewCard(Two, Clubs), deck[0])
	require.Equal(t, NewCard(Ace, Spades), deck[DeckSize-1])
}

func TestNewShuffledDeck(t *testing.T) {
	t.Run("same seed gives the same order", func(t *testing.T) {
		require.Equal(t, NewShuffledDeck(42), NewShuffledDeck(42))
	})

	t.Run("different seeds give different orders", func(t *testing.T) {
		require.NotEqual(t, NewShuffledDeck(1), NewShuffledDeck(2))
	})

	t.Run("shuffle keeps every card", func(t *testing.T) {
		require.ElementsMatch(t, NewDeck(), NewShuffledDeck(3))
	})
}

func TestCard(t *testing.T) {
	t.Run("strength follows rank", func(t *testing.T) {
		require.Equal(t, 2, NewCard(Two, Hearts).Strength())
		require.Equal(t, 10, NewCard(Ten, Hearts).Strength())
		require.Equal(t, 14, NewCard(Ace, Hearts).Strength())
	})

	t.Run("string form", func(t *testing.T) {
		require.Equal(t, "[queen of diamonds]", NewCard(Queen, Diamonds).String())
		require.Equal(t, "rank(1)", Rank(1).String())
		require.Equal(t, "suit(7)", Suit(7).String())
	})
}
