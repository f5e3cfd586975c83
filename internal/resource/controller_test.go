package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	ctx := t.Context()

	require.NoError(t, c.AcquireMemory(ctx, 50))
	require.NoError(t, c.AcquireMemory(ctx, 40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Would exceed the limit.
	assert.False(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	assert.True(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_MemoryTooLarge(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	assert.ErrorIs(t, c.AcquireMemory(t.Context(), 101), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_MemoryBlocking(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	require.NoError(t, c.AcquireMemory(t.Context(), 10))

	acquired := make(chan error, 1)
	go func() {
		acquired <- c.AcquireMemory(context.Background(), 5)
	}()

	select {
	case <-acquired:
		t.Fatal("acquire should block while the budget is exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	c.ReleaseMemory(10)
	require.NoError(t, <-acquired)
	assert.Equal(t, int64(5), c.MemoryUsage())
}

func TestController_MemoryCanceled(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	require.NoError(t, c.AcquireMemory(t.Context(), 10))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, c.AcquireMemory(ctx, 1), context.Canceled)
	assert.Equal(t, int64(10), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(t.Context(), 1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})

	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))
	assert.Equal(t, int64(2), c.ActiveWorkers())

	assert.False(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())
	assert.Equal(t, int64(2), c.ActiveWorkers())
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1000})

	// Full bucket at start.
	assert.True(t, c.TryAcquireIO(1000))
	assert.False(t, c.TryAcquireIO(1000))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, 1000))
}

func TestController_IOSplitsLargeRequests(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// Larger than the bucket; must not fail outright.
	start := time.Now()
	require.NoError(t, c.AcquireIO(t.Context(), (1<<20)+(1<<16)))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller
	ctx := t.Context()

	assert.NoError(t, c.AcquireMemory(ctx, 100))
	assert.True(t, c.TryAcquireMemory(100))
	c.ReleaseMemory(100)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())

	assert.NoError(t, c.AcquireWorker(ctx))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	assert.Equal(t, int64(0), c.ActiveWorkers())

	assert.NoError(t, c.AcquireIO(ctx, 100))
	assert.True(t, c.TryAcquireIO(100))
}
