package metrics

import (
	"math"
	"slices"

	"war/utils"
)

// TurnStats describes the distribution of game lengths.
type TurnStats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64 // Population standard deviation
	Min    int
	Max    int
	Q1     float64
	Q3     float64
	IQR    float64
	CV     float64 // Coefficient of variation, in percent
}

func NewTurnStats(turns []int) TurnStats {
	if len(turns) == 0 {
		return TurnStats{}
	}
	sorted := slices.Clone(turns)
	slices.Sort(sorted)

	n := float64(len(sorted))
	mean := float64(utils.Sum(sorted)) / n
	variance := 0.0
	for _, t := range sorted {
		d := float64(t) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / n)

	stats := TurnStats{
		N:      len(sorted),
		Mean:   mean,
		Median: percentile(sorted, 50),
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     percentile(sorted, 25),
		Q3:     percentile(sorted, 75),
	}
	stats.IQR = stats.Q3 - stats.Q1
	if mean != 0 {
		stats.CV = std / mean * 100
	}
	return stats
}

// percentile interpolates linearly between the closest ranks of sorted values.
func percentile(sorted []int, p float64) float64 {
	pos := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return float64(sorted[lower])
	}
	frac := pos - float64(lower)
	return float64(sorted[lower]) + frac*float64(sorted[upper]-sorted[lower])
}

// Histogram holds equal-width bins. Edges has one more entry than Counts and
// the last bin includes its upper edge.
type Histogram struct {
	Edges  []float64
	Counts []int
}

func NewHistogram(values []int, bins int) Histogram {
	if len(values) == 0 || bins < 1 {
		return Histogram{}
	}
	lo := float64(slices.Min(values))
	hi := float64(slices.Max(values))
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	h := Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi
	for _, v := range values {
		h.Counts[h.bin(float64(v))]++
	}
	return h
}

// bin returns the index of the bin holding v. Bins are right-open except the
// last, and rounding in the division is corrected against the edges.
func (h Histogram) bin(v float64) int {
	bins := len(h.Counts)
	lo, width := h.Edges[0], h.Edges[1]-h.Edges[0]
	i := min(max(int((v-lo)/width), 0), bins-1)
	for i < bins-1 && v >= h.Edges[i+1] {
		i++
	}
	for i > 0 && v < h.Edges[i] {
		i--
	}
	return i
}
