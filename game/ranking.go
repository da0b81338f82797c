package game

import "slices"

// RankPlayedCards groups players by the strength of the card they played and
// orders the groups from the highest strength to the lowest. Within a group
// players keep the order in which they appear in played. The input is not modified.
func RankPlayedCards(played []Play) []Group {
	index := make(map[int]int, len(played)) // strength -> position in groups
	groups := make([]Group, 0, len(played))
	for _, p := range played {
		strength := p.Card.Strength()
		if i, ok := index[strength]; ok {
			groups[i].Players = append(groups[i].Players, p.Player)
			continue
		}
		index[strength] = len(groups)
		groups = append(groups, Group{Strength: strength, Players: []int{p.Player}})
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return b.Strength - a.Strength
	})
	return groups
}
