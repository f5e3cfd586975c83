package bench

import (
	"slices"
	"time"
)

// Stats summarizes a set of timing samples.
type Stats struct {
	Runs   int
	Total  time.Duration
	Mean   time.Duration
	Min    time.Duration
	Max    time.Duration
	Median time.Duration
}

// Summarize computes Stats over samples. The median of an even count is the
// upper of the two middle samples. samples is not modified.
func Summarize(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return Stats{
		Runs:   len(sorted),
		Total:  total,
		Mean:   total / time.Duration(len(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: sorted[len(sorted)/2],
	}
}

// Throughput returns bytes per second for inputs of size bytes hashed in
// the mean time of s.
func (s Stats) Throughput(size int) float64 {
	if s.Mean <= 0 {
		return 0
	}
	return float64(size) / s.Mean.Seconds()
}
