package game

import "war/meta"

type StandardRules struct {
	WarStake int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		WarStake: meta.STAKE_PER_WAR,
	}
}

// NewRules returns standard rules with a custom war stake. Non-positive stakes fall back to the default.
func NewRules(stakePerWar int) *StandardRules {
	r := NewStandardRules()
	if stakePerWar > 0 {
		r.WarStake = stakePerWar
	}
	return r
}

func (sr *StandardRules) StakePerWar() int {
	return sr.WarStake
}
