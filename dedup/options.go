package dedup

import (
	"fmt"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/codec"
)

// DefaultChunkSize is the chunk size used when WithChunkSize is not given.
const DefaultChunkSize = 1 << 20

// MaxChunkSize bounds the size of a single chunk.
const MaxChunkSize = 64 << 20

// DefaultConcurrency is the number of chunks hashed and stored at once.
const DefaultConcurrency = 8

type options struct {
	seed             uint64
	chunkSize        int
	compression      codec.Type
	concurrency      int
	rateLimit        int64
	memoryLimit      int64
	cacheBytes       int64
	verify           bool
	logger           *meowhash.Logger
	metricsCollector meowhash.MetricsCollector
}

func defaultOptions() options {
	return options{
		chunkSize:        DefaultChunkSize,
		compression:      codec.None,
		concurrency:      DefaultConcurrency,
		logger:           meowhash.NoopLogger(),
		metricsCollector: meowhash.NoopMetricsCollector{},
	}
}

func (o *options) validate() error {
	if o.chunkSize <= 0 || o.chunkSize%meowhash.BlockSize != 0 {
		return fmt.Errorf("%w: %d (must be a positive multiple of %d)", ErrInvalidChunkSize, o.chunkSize, meowhash.BlockSize)
	}
	if o.chunkSize > MaxChunkSize {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidChunkSize, o.chunkSize, MaxChunkSize)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	// Every in-flight chunk buffer is charged against the limit, so it must
	// hold at least one.
	if o.memoryLimit > 0 && o.memoryLimit < int64(o.chunkSize) {
		o.memoryLimit = int64(o.chunkSize)
	}
	return nil
}

// Option configures a Store.
type Option func(*options)

// WithSeed sets the hash seed. Stores that share a backend must use the
// same seed to deduplicate against each other.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithChunkSize sets the chunk size in bytes. It must be a positive multiple
// of meowhash.BlockSize no larger than MaxChunkSize; New fails with
// ErrInvalidChunkSize otherwise.
func WithChunkSize(size int) Option {
	return func(o *options) {
		o.chunkSize = size
	}
}

// WithCompression sets the codec used for new chunks. Existing chunks keep
// the codec they were written with.
func WithCompression(t codec.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithConcurrency caps the chunks processed at once across all calls on
// the store. Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithRateLimit caps backend writes to bytesPerSec. Zero disables the limit.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.rateLimit = bytesPerSec
	}
}

// WithMemoryLimit caps the bytes of chunk buffers held at once. Zero
// disables the limit; smaller values are raised to one chunk.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithCache keeps up to bytes of decoded chunks in memory for repeated reads.
func WithCache(bytes int64) Option {
	return func(o *options) {
		o.cacheBytes = bytes
	}
}

// WithVerify re-hashes every chunk read and fails with ErrChecksumMismatch
// when the content does not match its key.
func WithVerify(verify bool) Option {
	return func(o *options) {
		o.verify = verify
	}
}

// WithLogger configures the logger. Pass nil to disable logging.
func WithLogger(l *meowhash.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = meowhash.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector. Pass nil to disable metrics.
//
// Example:
//
//	metrics := &meowhash.BasicMetricsCollector{}
//	store, _ := dedup.New(backend, dedup.WithMetrics(metrics))
//	// ...
//	stats := metrics.GetStats()
func WithMetrics(mc meowhash.MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = meowhash.NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
