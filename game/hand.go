package game

// Hand is a player's face-down pile. Cards are played from the front and won
// cards are added to the back. Each Hand owns its storage.
type Hand struct {
	cards []Card
}

// NewHand copies cards into a new hand; the first card is the next one played.
func NewHand(cards ...Card) *Hand {
	h := &Hand{cards: make([]Card, len(cards))}
	copy(h.cards, cards)
	return h
}

func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// PopFront removes and returns the next card. ok is false when the hand is empty.
func (h *Hand) PopFront() (card Card, ok bool) {
	if len(h.cards) == 0 {
		return Card{}, false
	}
	card = h.cards[0]
	h.cards = h.cards[1:]
	return card, true
}

// PopN removes up to n cards from the front, in play order.
func (h *Hand) PopN(n int) []Card {
	n = min(max(n, 0), len(h.cards))
	taken := make([]Card, n)
	copy(taken, h.cards[:n])
	h.cards = h.cards[n:]
	return taken
}

// Drain removes and returns every card in the hand.
func (h *Hand) Drain() []Card {
	return h.PopN(len(h.cards))
}

// PushBack appends won cards to the back of the hand.
func (h *Hand) PushBack(cards ...Card) {
	if len(h.cards) == 0 {
		// Drop the consumed prefix of the old backing array.
		h.cards = nil
	}
	h.cards = append(h.cards, cards...)
}

// Cards returns a copy of the hand, front first.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// AppendTo appends the hand's cards, front first, to dst and returns the extended slice.
func (h *Hand) AppendTo(dst []Card) []Card {
	return append(dst, h.cards...)
}

// Snapshot copies every hand into plain slices.
func Snapshot(hands []*Hand) [][]Card {
	out := make([][]Card, len(hands))
	for i, h := range hands {
		out[i] = h.Cards()
	}
	return out
}

// Counts returns the number of cards held by each player.
func Counts(hands []*Hand) []int {
	out := make([]int, len(hands))
	for i, h := range hands {
		out[i] = h.Len()
	}
	return out
}

// ActivePlayers returns the indices of players that still hold cards.
func ActivePlayers(hands []*Hand) []int {
	active := make([]int, 0, len(hands))
	for i, h := range hands {
		if !h.IsEmpty() {
			active = append(active, i)
		}
	}
	return active
}
