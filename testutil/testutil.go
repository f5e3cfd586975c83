package testutil

import (
	"math/bits"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Fill fills dst with random bytes.
// Locks only once per call (preferred over calling Uint64 in a loop).
func (r *RNG) Fill(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.Fill(b)
	return b
}

// Words32 returns n random 32-bit words.
func (r *RNG) Words32(n int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := make([]uint32, n)
	for i := range w {
		w[i] = r.rand.Uint32()
	}
	return w
}

// RepeatedChunks returns n chunks of chunkSize bytes drawn from only
// distinct different random chunks, in random order. Each distinct chunk
// appears at least once when n >= distinct.
func (r *RNG) RepeatedChunks(n, chunkSize, distinct int) []byte {
	pool := make([][]byte, distinct)
	for i := range pool {
		pool[i] = r.Bytes(chunkSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]byte, 0, n*chunkSize)
	for i := range n {
		idx := i
		if i >= distinct {
			idx = r.rand.Intn(distinct)
		}
		out = append(out, pool[idx]...)
	}
	return out
}

// FlipBit returns a copy of b with bit i flipped (bit 0 is the low bit of b[0]).
func FlipBit(b []byte, i int) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	out[i/8] ^= 1 << (i % 8)
	return out
}

// HammingDistance returns the number of differing bits between a and b,
// which must have equal length.
func HammingDistance(a, b []byte) int {
	if len(a) != len(b) {
		panic("testutil: HammingDistance length mismatch")
	}
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

// Vector is a named fixed input.
type Vector struct {
	Name string
	Data []byte
}

// PatternVectors returns the four 32-byte pattern inputs: all zeros, all
// ones, alternating 0x00000000/0xFFFFFFFF words, and 0xAA bytes.
func PatternVectors() []Vector {
	zeros := make([]byte, 32)

	ones := make([]byte, 32)
	for i := range ones {
		ones[i] = 0xFF
	}

	alternating := make([]byte, 32)
	for i := 4; i < 32; i += 8 {
		copy(alternating[i:i+4], []byte{0xFF, 0xFF, 0xFF, 0xFF})
	}

	aa := make([]byte, 32)
	for i := range aa {
		aa[i] = 0xAA
	}

	return []Vector{
		{Name: "zeros", Data: zeros},
		{Name: "ones", Data: ones},
		{Name: "alternating", Data: alternating},
		{Name: "0xAA", Data: aa},
	}
}
