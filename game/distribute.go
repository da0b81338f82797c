package game

import "fmt"

// Distribute deals deck into numPlayers contiguous hands in deck order. The first
// len(deck) mod numPlayers players receive one extra card.
func Distribute(deck []Card, numPlayers int) ([]*Hand, error) {
	if numPlayers < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfiguration, numPlayers)
	}
	if numPlayers > DeckSize {
		return nil, fmt.Errorf("%w: %d players cannot each receive a card", ErrInvalidConfiguration, numPlayers)
	}
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("%w: deck has %d cards, want %d", ErrInvalidConfiguration, len(deck), DeckSize)
	}

	base := len(deck) / numPlayers
	extra := len(deck) % numPlayers

	hands := make([]*Hand, numPlayers)
	start := 0
	for i := range hands {
		size := base
		if i < extra {
			size++
		}
		hands[i] = NewHand(deck[start : start+size]...)
		start += size
	}
	return hands, nil
}
