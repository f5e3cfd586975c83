package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/internal/mem"
)

// ErrMismatch is returned when two processing widths disagree on a digest.
var ErrMismatch = errors.New("bench: widths produced different digests")

// Widths lists the processing widths in the order they are measured.
var Widths = []int{128, 256, 512}

// Config controls a benchmark run.
type Config struct {
	// MinSize and MaxSize bound the input sizes in bytes. Sizes double from
	// MinSize until they exceed MaxSize.
	MinSize int
	MaxSize int

	// Runs is the number of timed calls at MinSize. It halves with every
	// size step, never dropping below one.
	Runs int

	// Aligned hashes through HashAligned from 64-byte aligned buffers.
	Aligned bool

	// Seed seeds the input generator. Zero picks a time-based seed.
	Seed uint64
}

// DefaultConfig mirrors the classic driver: 256 KiB to 32 MiB inputs,
// 4096 calls at the smallest size.
func DefaultConfig() Config {
	return Config{
		MinSize: 1 << 18,
		MaxSize: 1 << 25,
		Runs:    1 << 12,
	}
}

// Result is the measurement of one width at one input size.
type Result struct {
	Size    int
	Width   int
	Aligned bool
	Stats   Stats
}

// Throughput returns bytes per second at the mean call time.
func (r Result) Throughput() float64 {
	return r.Stats.Throughput(r.Size)
}

// Run measures every width at every size. Each call hashes fresh random
// words under a fresh random seed; a warm-up call precedes the timed one.
// The 64-bit views of all widths are compared on every input.
func Run(ctx context.Context, cfg Config, report func(Result)) ([]Result, error) {
	if cfg.MinSize <= 0 || cfg.MaxSize < cfg.MinSize {
		return nil, fmt.Errorf("bench: invalid size range [%d, %d]", cfg.MinSize, cfg.MaxSize)
	}
	runs := max(cfg.Runs, 1)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	// One spare word leaves room for the misaligned shift.
	buf := mem.AllocAlignedUint32(cfg.MaxSize/4 + 1)

	var results []Result
	for size := cfg.MinSize; size <= cfg.MaxSize; size *= 2 {
		off := 0
		if !cfg.Aligned {
			// Shift by one word so loads straddle vector boundaries.
			off = 1
		}
		words := buf[off : off+size/4]
		data := mem.Bytes(words)

		samples := make([][]time.Duration, len(Widths))
		for i := range samples {
			samples[i] = make([]time.Duration, 0, runs)
		}

		for range runs {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			for i := range words {
				words[i] = rng.Uint32()
			}
			hseed := rng.Uint64()

			var first uint64
			for i, w := range Widths {
				hashWidth(w, cfg.Aligned, data, hseed)

				start := time.Now()
				v := hashWidth(w, cfg.Aligned, data, hseed)
				samples[i] = append(samples[i], time.Since(start))

				if i == 0 {
					first = v
				} else if v != first {
					return results, fmt.Errorf("%w: size %d seed %#x: %d-bit %#x, %d-bit %#x",
						ErrMismatch, len(data), hseed, Widths[0], first, w, v)
				}
			}
		}

		for i, w := range Widths {
			r := Result{Size: len(data), Width: w, Aligned: cfg.Aligned, Stats: Summarize(samples[i])}
			results = append(results, r)
			if report != nil {
				report(r)
			}
		}

		runs = max(runs/2, 1)
	}
	return results, nil
}

func hashWidth(width int, aligned bool, data []byte, seed uint64) uint64 {
	var d meowhash.Digest[uint64]
	switch width {
	case 512:
		if aligned {
			d = meowhash.HashAligned[meowhash.Lanes512, uint64](data, seed)
		} else {
			d = meowhash.Hash[meowhash.Lanes512, uint64](data, seed)
		}
	case 256:
		if aligned {
			d = meowhash.HashAligned[meowhash.Lanes256, uint64](data, seed)
		} else {
			d = meowhash.Hash[meowhash.Lanes256, uint64](data, seed)
		}
	default:
		if aligned {
			d = meowhash.HashAligned[meowhash.Lanes128, uint64](data, seed)
		} else {
			d = meowhash.Hash[meowhash.Lanes128, uint64](data, seed)
		}
	}
	return d.At(0)
}
