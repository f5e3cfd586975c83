// Package resource bounds the resources a chunk store may hold at once.
//
// A Controller governs three budgets shared by every operation that uses it:
//
//   - Memory: bytes of chunk buffers in flight (blocking or fail-fast)
//   - Workers: concurrent hash-and-store jobs
//   - IO: backend write throughput (token bucket)
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	    MaxWorkers:       8,
//	    IOLimitBytesPerSec: 100 << 20,
//	})
//
//	if err := rc.AcquireMemory(ctx, n); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: they become no-ops, so
// limits stay optional without nil checks at call sites.
package resource
