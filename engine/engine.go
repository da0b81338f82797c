package engine

import (
	"time"

	"war/game"
)

type Runner interface {
	// Run plays a game till one player holds every card or the turn cap is reached
	Run() (GameResult, error)
}

type EndStatus string

const (
	StatusUnfinished EndStatus = ""
	StatusWinner     EndStatus = "winner"
	StatusDraw       EndStatus = "draw"
)

// GameResult is a snapshot of a finished game.
type GameResult struct {
	ID             string
	CompletedTurns int
	Elapsed        time.Duration
	StartingHands  [][]game.Card
	EndingHands    [][]game.Card
	FinalCounts    []int
	Status         EndStatus
	Winner         int // Player index, -1 unless Status is StatusWinner
	Wars           int // War rounds fought across all turns
	Forfeits       int // Players that forfeited during a war, counted per occurrence
}

// ElapsedMillis returns the wall-clock duration of the game loop in milliseconds.
func (r GameResult) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}
