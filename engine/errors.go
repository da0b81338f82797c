package engine

import (
	"errors"
	"fmt"

	"war/game"
)

var (
	ErrConservationViolation = errors.New("card conservation violated")
	ErrNoPlayersRemaining    = errors.New("no players remaining")
)

// ConservationError reports a turn after which the number of cards in play changed.
// The engine cannot continue past it.
type ConservationError struct {
	Turn     int
	Expected int
	Actual   int
	Before   [][]game.Card
	After    [][]game.Card
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("%v after turn %d: expected %d cards, found %d (before %v, after %v)",
		ErrConservationViolation, e.Turn, e.Expected, e.Actual, lengths(e.Before), lengths(e.After))
}

func (e *ConservationError) Is(target error) bool {
	return target == ErrConservationViolation
}

// NoPlayersRemainingError reports a war in which every tied player forfeited.
// The stake stays unclaimed and is carried here.
type NoPlayersRemainingError struct {
	Turn    int
	Players []int
	Stake   []game.Card
}

func (e *NoPlayersRemainingError) Error() string {
	return fmt.Sprintf("%v: players %v forfeited every card in a war on turn %d, leaving a stake of %d cards",
		ErrNoPlayersRemaining, e.Players, e.Turn, len(e.Stake))
}

func (e *NoPlayersRemainingError) Is(target error) bool {
	return target == ErrNoPlayersRemaining
}

func lengths(snapshot [][]game.Card) []int {
	out := make([]int, len(snapshot))
	for i, cards := range snapshot {
		out[i] = len(cards)
	}
	return out
}
