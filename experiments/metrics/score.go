package metrics

import (
	"math"

	"war/game"
	"war/meta"
)

// WarValue scores winning a card of strength won with a card of strength
// played. Close margins and high-value captures score higher; k sharpens the
// margin penalty.
func WarValue(played, won int, k float64) float64 {
	margin := math.Abs(float64(won - played))
	return float64(won) * math.Pow(1-margin/13, k)
}

func WarScore(played, won game.Card) float64 {
	return WarValue(played.Strength(), won.Strength(), meta.WAR_SCORE_EXPONENT)
}

// TurnValuesMatrix returns the war score of every (played, won) pair. Row i is
// the played strength i+2 and column j the won strength j+2.
func TurnValuesMatrix() [][]float64 {
	size := int(game.Ace-game.Two) + 1
	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
		for j := range matrix[i] {
			played := game.NewCard(game.Two+game.Rank(i), game.Clubs)
			won := game.NewCard(game.Two+game.Rank(j), game.Clubs)
			matrix[i][j] = WarScore(played, won)
		}
	}
	return matrix
}
