package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistribute(t *testing.T) {
	t.Run("three players", func(t *testing.T) {
		hands, err := Distribute(NewDeck(), 3)
		require.NoError(t, err)
		require.Equal(t, []int{18, 17, 17}, Counts(hands))
	})

	t.Run("contiguous slices in deck order", func(t *testing.T) {
		deck := NewShuffledDeck(11)
		hands, err := Distribute(deck, 2)
		require.NoError(t, err)
		require.Equal(t, deck[:26], hands[0].Cards())
		require.Equal(t, deck[26:], hands[1].Cards())
	})

	t.Run("fair for every player count", func(t *testing.T) {
		for n := 2; n <= DeckSize; n++ {
			hands, err := Distribute(NewDeck(), n)
			require.NoError(t, err)
			require.Len(t, hands, n)

			counts := Counts(hands)
			total := 0
			for i, c := range counts {
				total += c
				want := DeckSize / n
				if i < DeckSize%n {
					want++
				}
				require.Equal(t, want, c, "players %d hand %d", n, i)
			}
			require.Equal(t, DeckSize, total)
		}
	})

	t.Run("invalid configurations", func(t *testing.T) {
		_, err := Distribute(NewDeck(), 1)
		require.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = Distribute(NewDeck(), 53)
		require.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = Distribute(NewDeck()[:40], 2)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}
