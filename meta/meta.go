// meta/meta.go
package meta

// NUM_PLAYERS defines the default number of players in a game.
const NUM_PLAYERS = 2

// MAX_TURNS defines the turn cap after which a game is called a draw.
const MAX_TURNS = 5000

// STAKE_PER_WAR defines how many face-down cards each tied player stakes per war round.
const STAKE_PER_WAR = 3

// NUM_SIMULATIONS defines the number of games played by a batch experiment.
const NUM_SIMULATIONS = 25_000

// HISTOGRAM_BINS defines the number of turn-count histogram bins.
const HISTOGRAM_BINS = 50

// WAR_SCORE_EXPONENT defines the margin penalty exponent of the war score.
const WAR_SCORE_EXPONENT = 2
