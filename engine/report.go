package engine

import "war/game"

// Report packages the engine's current state into a GameResult. It makes no
// decisions and copies every hand, so repeated calls on a finished game return
// equal values.
func (e *Engine) Report() GameResult {
	starting := make([][]game.Card, len(e.starting))
	for i, cards := range e.starting {
		starting[i] = append([]game.Card(nil), cards...)
	}
	return GameResult{
		ID:             e.id,
		CompletedTurns: e.turns,
		Elapsed:        e.elapsed,
		StartingHands:  starting,
		EndingHands:    game.Snapshot(e.hands),
		FinalCounts:    game.Counts(e.hands),
		Status:         e.status,
		Winner:         e.winner,
		Wars:           e.wars,
		Forfeits:       e.forfeits,
	}
}
