package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	StatusWinner  = "winner"
	StatusDraw    = "draw"
	StatusAnomaly = "no_players_remaining"
)

type GameMetric struct {
	GameID      string
	Status      string // StatusWinner, StatusDraw or StatusAnomaly
	Winner      int    // Player index, -1 without a winner
	Turns       int
	Wars        int
	Forfeits    int
	Duration    time.Duration
	FinalCounts []int
}

type BatchMetric struct {
	Games     int
	Winners   int
	Draws     int
	Anomalies int
	Wins      []int // Games won, indexed by player
	Wars      int
	Forfeits  int
	Duration  time.Duration
	Turns     TurnStats // Over games that ended with a winner
	Histogram Histogram
}

// Collector gathers game metrics from concurrent workers.
type Collector interface {
	Start(players, bins int)
	AddGame(metric GameMetric)
	Complete() BatchMetric
}

type collector struct {
	players   int
	bins      int
	startTime time.Time
	games     atomic.Int64
	draws     atomic.Int64
	anomalies atomic.Int64
	wars      atomic.Int64
	forfeits  atomic.Int64

	mu    sync.Mutex
	wins  []int
	turns []int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(players, bins int) {
	m.startTime = time.Now()
	m.players = players
	m.bins = bins
	m.games.Store(0)
	m.draws.Store(0)
	m.anomalies.Store(0)
	m.wars.Store(0)
	m.forfeits.Store(0)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.wins = make([]int, players)
	m.turns = nil
}

func (m *collector) AddGame(metric GameMetric) {
	m.games.Add(1)
	m.wars.Add(int64(metric.Wars))
	m.forfeits.Add(int64(metric.Forfeits))

	switch metric.Status {
	case StatusDraw:
		m.draws.Add(1)
	case StatusAnomaly:
		m.anomalies.Add(1)
	case StatusWinner:
		m.mu.Lock()
		defer m.mu.Unlock()
		if metric.Winner >= 0 && metric.Winner < len(m.wins) {
			m.wins[metric.Winner]++
		}
		m.turns = append(m.turns, metric.Turns)
	}
}

func (m *collector) Complete() BatchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	wins := make([]int, len(m.wins))
	copy(wins, m.wins)
	return BatchMetric{
		Games:     int(m.games.Load()),
		Winners:   len(m.turns),
		Draws:     int(m.draws.Load()),
		Anomalies: int(m.anomalies.Load()),
		Wins:      wins,
		Wars:      int(m.wars.Load()),
		Forfeits:  int(m.forfeits.Load()),
		Duration:  time.Since(m.startTime),
		Turns:     NewTurnStats(m.turns),
		Histogram: NewHistogram(m.turns, m.bins),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(players, bins int)   {}
func (m *dummyCollector) AddGame(metric GameMetric) {}
func (m *dummyCollector) Complete() BatchMetric     { return BatchMetric{} }
