package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHand(t *testing.T) {
	t.Run("plays from the front and wins to the back", func(t *testing.T) {
		h := NewHand(NewCard(Two, Clubs), NewCard(Three, Clubs))

		card, ok := h.PopFront()
		require.True(t, ok)
		require.Equal(t, Two, card.Rank)

		h.PushBack(NewCard(Ace, Hearts), NewCard(Four, Spades))
		require.Equal(t, []Card{NewCard(Three, Clubs), NewCard(Ace, Hearts), NewCard(Four, Spades)}, h.Cards())
	})

	t.Run("pop from an empty hand", func(t *testing.T) {
		h := NewHand()
		_, ok := h.PopFront()
		require.False(t, ok)
		require.True(t, h.IsEmpty())
	})

	t.Run("pop n is bounded by the hand", func(t *testing.T) {
		h := NewHand(NewCard(Two, Clubs), NewCard(Three, Clubs))
		require.Len(t, h.PopN(5), 2)
		require.Zero(t, h.Len())
		require.Empty(t, h.PopN(-1))
	})

	t.Run("drain empties the hand", func(t *testing.T) {
		h := NewHand(NewCard(Two, Clubs), NewCard(Three, Clubs))
		require.Equal(t, []Card{NewCard(Two, Clubs), NewCard(Three, Clubs)}, h.Drain())
		require.True(t, h.IsEmpty())
	})

	t.Run("hands never share storage", func(t *testing.T) {
		cards := []Card{NewCard(Two, Clubs), NewCard(Three, Clubs)}
		a := NewHand(cards...)
		cards[0] = NewCard(Ace, Spades)
		require.Equal(t, Two, a.Cards()[0].Rank, "Hand should copy its input")

		won := a.Drain()
		b := NewHand()
		b.PushBack(won...)
		won[0] = NewCard(King, Spades)
		require.Equal(t, Two, b.Cards()[0].Rank, "PushBack should copy the won cards")

		snapshot := b.Cards()
		snapshot[0] = NewCard(King, Spades)
		require.Equal(t, Two, b.Cards()[0].Rank, "Cards should return a copy")
	})

	t.Run("helpers over several hands", func(t *testing.T) {
		hands := []*Hand{NewHand(NewCard(Two, Clubs)), NewHand(), NewHand(NewCard(Three, Clubs), NewCard(Four, Clubs))}
		require.Equal(t, []int{1, 0, 2}, Counts(hands))
		require.Equal(t, []int{0, 2}, ActivePlayers(hands))
		require.Equal(t, [][]Card{{NewCard(Two, Clubs)}, {}, {NewCard(Three, Clubs), NewCard(Four, Clubs)}}, Snapshot(hands))
	})
}
