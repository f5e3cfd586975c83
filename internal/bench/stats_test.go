package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	samples := []time.Duration{50, 10, 40, 20, 30}

	s := Summarize(samples)
	assert.Equal(t, 5, s.Runs)
	assert.Equal(t, time.Duration(150), s.Total)
	assert.Equal(t, time.Duration(30), s.Mean)
	assert.Equal(t, time.Duration(10), s.Min)
	assert.Equal(t, time.Duration(50), s.Max)
	assert.Equal(t, time.Duration(30), s.Median)

	// Input order is preserved.
	assert.Equal(t, []time.Duration{50, 10, 40, 20, 30}, samples)
}

func TestSummarizeEvenCount(t *testing.T) {
	s := Summarize([]time.Duration{4, 1, 3, 2})
	assert.Equal(t, time.Duration(3), s.Median)
	assert.Equal(t, time.Duration(2), s.Mean)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
	assert.Zero(t, Stats{}.Throughput(100))
}

func TestThroughput(t *testing.T) {
	s := Stats{Mean: time.Second / 2}
	assert.InDelta(t, 2000, s.Throughput(1000), 1e-9)
}
