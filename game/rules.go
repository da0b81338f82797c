package game

type Rules interface {
	// StakePerWar is the number of face-down cards each tied player adds to the pot per war round
	StakePerWar() int
}
