package engine

import (
	"errors"
	"fmt"
	"time"

	"war/game"
	"war/meta"
	"war/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var _ Runner = (*Engine)(nil)

type Option func(e *Engine)

// resolver plays a single turn. ResolveTurn in production.
type resolver func(hands []*game.Hand, stakePerWar int) (Turn, error)

// Engine holds the state of one game from the deal to the last turn.
// It is not safe for concurrent use; run independent games on independent engines.
type Engine struct {
	id       string
	hands    []*game.Hand
	rules    game.Rules
	maxTurns int
	resolve  resolver

	total    int
	starting [][]game.Card
	before   [][]game.Card // Reused buffer holding the hands at the start of the current turn

	turns    int
	wars     int
	forfeits int
	status   EndStatus
	winner   int
	elapsed  time.Duration
	err      error // Set when the game ended early
}

func WithMaxTurns(maxTurns int) Option {
	return func(e *Engine) {
		e.maxTurns = maxTurns
	}
}

func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

func withResolver(r resolver) Option {
	return func(e *Engine) {
		e.resolve = r
	}
}

// LocalEngine prepares a game over hands. The engine takes ownership of the hands.
// A nil rules value selects the standard rules.
func LocalEngine(hands []*game.Hand, rules game.Rules, options ...Option) (*Engine, error) {
	if len(hands) < 2 {
		return nil, fmt.Errorf("%w: need at least two players, got %d", game.ErrInvalidConfiguration, len(hands))
	}
	if rules == nil {
		rules = game.NewStandardRules()
	}
	if rules.StakePerWar() < 1 {
		return nil, fmt.Errorf("%w: stake per war must be at least 1, got %d", game.ErrInvalidConfiguration, rules.StakePerWar())
	}

	e := &Engine{ // Default values
		id:       uuid.NewString(),
		hands:    hands,
		rules:    rules,
		maxTurns: meta.MAX_TURNS,
		resolve:  ResolveTurn,
		winner:   -1,
	}
	for _, option := range options {
		option(e)
	}
	if e.maxTurns < 1 {
		return nil, fmt.Errorf("%w: max turns must be at least 1, got %d", game.ErrInvalidConfiguration, e.maxTurns)
	}

	e.starting = game.Snapshot(hands)
	e.total = utils.Sum(game.Counts(hands))
	e.before = make([][]game.Card, len(hands))
	return e, nil
}

// NewGame deals deck to numPlayers and prepares a game over the resulting hands.
func NewGame(deck []game.Card, numPlayers int, rules game.Rules, options ...Option) (*Engine, error) {
	hands, err := game.Distribute(deck, numPlayers)
	if err != nil {
		return nil, err
	}
	return LocalEngine(hands, rules, options...)
}

func (e *Engine) ID() string {
	return e.id
}

// Run executes the game loop until a single player holds every card or the turn
// cap is reached. A *ConservationError or *NoPlayersRemainingError ends the game early.
func (e *Engine) Run() (GameResult, error) {
	if e.err != nil {
		return GameResult{}, e.err
	}
	if e.status != StatusUnfinished {
		return e.Report(), nil
	}

	start := time.Now()

	log.Debug().Msgf("game %s starting with %d players and %d cards", e.id, len(e.hands), e.total)

	stakePerWar := e.rules.StakePerWar()
	for len(game.ActivePlayers(e.hands)) > 1 && e.turns < e.maxTurns {
		e.remember()

		turn, err := e.resolve(e.hands, stakePerWar)
		e.turns++
		e.wars += turn.Wars
		e.forfeits += len(turn.Forfeits)
		if err != nil {
			return GameResult{}, e.abort(err, start)
		}

		if err := e.checkConservation(0); err != nil {
			return GameResult{}, e.abort(err, start)
		}
	}

	active := game.ActivePlayers(e.hands)
	if len(active) == 1 {
		e.status = StatusWinner
		e.winner = active[0]
		log.Debug().Msgf("game %s won by player %d after %d turns", e.id, e.winner, e.turns)
	} else {
		e.status = StatusDraw
		log.Debug().Msgf("game %s stopped after %d turns with %d players holding cards", e.id, e.turns, len(active))
	}

	e.elapsed = time.Since(start)
	return e.Report(), nil
}

// abort records the error that ended the game. A stranded stake still counts
// towards conservation, so it is checked before the error is surfaced.
func (e *Engine) abort(err error, start time.Time) error {
	e.elapsed = time.Since(start)

	var stranded *NoPlayersRemainingError
	if errors.As(err, &stranded) {
		stranded.Turn = e.turns
		if cerr := e.checkConservation(len(stranded.Stake)); cerr != nil {
			err = cerr
		}
	}

	if errors.Is(err, ErrNoPlayersRemaining) {
		log.Warn().Msgf("game %s: %v", e.id, err)
	} else {
		log.Error().Err(err).Msgf("game %s aborted", e.id)
	}
	e.err = err
	return err
}

// remember copies the current hands into the reused before buffer.
func (e *Engine) remember() {
	for i, h := range e.hands {
		e.before[i] = h.AppendTo(e.before[i][:0])
	}
}

// checkConservation verifies that the hands plus inFlight stake cards still add up to the starting total.
func (e *Engine) checkConservation(inFlight int) error {
	actual := utils.Sum(game.Counts(e.hands)) + inFlight
	if actual == e.total {
		return nil
	}
	before := make([][]game.Card, len(e.before))
	for i, cards := range e.before {
		before[i] = append([]game.Card(nil), cards...)
	}
	return &ConservationError{
		Turn:     e.turns,
		Expected: e.total,
		Actual:   actual,
		Before:   before,
		After:    game.Snapshot(e.hands),
	}
}
