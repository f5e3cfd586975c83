// Package testutil provides testing utilities for meowhash.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Input Generation
//
//	rng := testutil.NewRNG(seed)
//	buf := rng.Bytes(1 << 20)
//	words := rng.Words32(1 << 18)
//
// # Bit Statistics
//
//	flipped := testutil.FlipBit(buf, 17)
//	diff := testutil.HammingDistance(a, b)
//
// # Deduplication Fixtures
//
//	data := rng.RepeatedChunks(64, 4096, 8) // 64 chunks, only 8 distinct
package testutil
