package game

import "errors"

// DeckSize is the number of cards in a standard deck, one per rank and suit.
const DeckSize = 52

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Play is a card put face up by a player during a round.
type Play struct {
	Player int
	Card   Card
}

// Group is the set of players who played cards of the same strength, in play order.
type Group struct {
	Strength int
	Players  []int
}

// IsTie reports whether more than one player shares the group's strength.
func (g Group) IsTie() bool {
	return len(g.Players) > 1
}
