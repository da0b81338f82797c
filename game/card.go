package game

import "fmt"

type Suit int

const (
	Clubs    Suit = iota // 0
	Diamonds             // 1
	Hearts               // 2
	Spades               // 3
)

var suitNames = [...]string{"clubs", "diamonds", "hearts", "spades"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return fmt.Sprintf("suit(%d)", int(s))
	}
	return suitNames[s]
}

// Rank values double as card strength, so Two is 2 and Ace is 14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{"two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "jack", "queen", "king", "ace"}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rank(%d)", int(r))
	}
	return rankNames[r-Two]
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Only the rank takes part in comparisons.
type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Strength returns the comparison value of the card, 2 through 14.
func (c Card) Strength() int {
	return int(c.Rank)
}

func (c Card) String() string {
	return fmt.Sprintf("[%s of %s]", c.Rank, c.Suit)
}
