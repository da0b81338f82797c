package metrics

import (
	"testing"

	"war/game"

	"github.com/stretchr/testify/require"
)

func TestWarValue(t *testing.T) {
	t.Run("formula", func(t *testing.T) {
		require.InDelta(t, 9*144.0/169, WarValue(10, 9, 2), 1e-9)
		require.InDelta(t, 5.0, WarValue(5, 5, 2), 1e-9)
	})

	t.Run("close margins score higher", func(t *testing.T) {
		ten := game.NewCard(game.Ten, game.Clubs)
		require.Greater(t,
			WarScore(ten, game.NewCard(game.Nine, game.Hearts)),
			WarScore(ten, game.NewCard(game.Two, game.Hearts)))
	})

	t.Run("bigger captures score higher", func(t *testing.T) {
		require.Greater(t, WarValue(11, 12, 2), WarValue(3, 2, 2))
	})
}

func TestTurnValuesMatrix(t *testing.T) {
	matrix := TurnValuesMatrix()

	require.Len(t, matrix, 13)
	for _, row := range matrix {
		require.Len(t, row, 13)
	}
	require.InDelta(t, 2.0, matrix[0][0], 1e-9, "Two for two")
	require.InDelta(t, 14*144.0/169, matrix[11][12], 1e-9, "King winning an ace")
	require.InDelta(t, WarValue(14, 2, 2), matrix[12][0], 1e-9)
}
