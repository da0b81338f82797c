package engine

import (
	"war/game"
)

type turnState int

const (
	normal turnState = iota
	war
	resolved
)

// Turn summarizes one resolved turn.
type Turn struct {
	Winner    int   // -1 when fewer than two players could play
	Wars      int   // War rounds entered during the turn
	Forfeits  []int // Players that forfeited their remaining cards
	Collected int   // Cards added to the winner's hand
}

// ResolveTurn plays one turn among every player holding cards, escalating into
// war rounds while the top card is tied, and gives the whole stake to the
// turn's winner. Hands are mutated in place.
//
// A tied player holding stakePerWar cards or fewer forfeits them all into the
// stake and drops out of the turn. If that leaves nobody, a
// *NoPlayersRemainingError carrying the unclaimed stake is returned.
func ResolveTurn(hands []*game.Hand, stakePerWar int) (Turn, error) {
	turn := Turn{Winner: -1}
	active := game.ActivePlayers(hands)
	if len(active) < 2 {
		return turn, nil
	}

	var stake []game.Card
	state := normal
	for state != resolved {
		switch state {
		case normal:
			played := make([]game.Play, 0, len(active))
			for _, p := range active {
				card, _ := hands[p].PopFront()
				played = append(played, game.Play{Player: p, Card: card})
				stake = append(stake, card)
			}

			top := game.RankPlayedCards(played)[0]
			if !top.IsTie() {
				turn.Winner = top.Players[0]
				state = resolved
				continue
			}
			active = top.Players
			turn.Wars++
			state = war

		case war:
			remaining := make([]int, 0, len(active))
			for _, p := range active {
				hand := hands[p]
				if hand.Len() <= stakePerWar {
					stake = append(stake, hand.Drain()...)
					turn.Forfeits = append(turn.Forfeits, p)
					continue
				}
				stake = append(stake, hand.PopN(stakePerWar)...)
				remaining = append(remaining, p)
			}

			switch len(remaining) {
			case 0:
				return turn, &NoPlayersRemainingError{Players: active, Stake: stake}
			case 1:
				turn.Winner = remaining[0]
				state = resolved
			default:
				active = remaining
				state = normal
			}
		}
	}

	hands[turn.Winner].PushBack(stake...)
	turn.Collected = len(stake)
	return turn, nil
}
