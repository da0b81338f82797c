package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("aggregates concurrent games", func(t *testing.T) {
		c := NewCollector()
		c.Start(2, 4)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				switch {
				case i%10 == 0:
					c.AddGame(GameMetric{Status: StatusDraw, Winner: -1, Turns: 5000})
				case i%25 == 1:
					c.AddGame(GameMetric{Status: StatusAnomaly, Winner: -1, Turns: 3, Wars: 1, Forfeits: 3})
				default:
					c.AddGame(GameMetric{Status: StatusWinner, Winner: i % 2, Turns: 100 + i, Wars: 2})
				}
			}()
		}
		wg.Wait()

		m := c.Complete()
		require.Equal(t, 100, m.Games)
		require.Equal(t, 10, m.Draws)
		require.Equal(t, 4, m.Anomalies)
		require.Equal(t, 86, m.Winners)
		require.Equal(t, 86, m.Wins[0]+m.Wins[1])
		require.Equal(t, 86, m.Turns.N)
		require.Equal(t, 86*2+4, m.Wars)
		require.Equal(t, 12, m.Forfeits)
		require.Len(t, m.Histogram.Counts, 4)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(2, 1)
		c.AddGame(GameMetric{Status: StatusWinner, Winner: 0, Turns: 10})
		c.Start(2, 1)

		m := c.Complete()
		require.Zero(t, m.Games)
		require.Equal(t, []int{0, 0}, m.Wins)
	})

	t.Run("dummy collector", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2, 1)
		c.AddGame(GameMetric{Status: StatusWinner})
		require.Equal(t, BatchMetric{}, c.Complete())
	})
}
