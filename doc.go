// Package meowhash implements the Meow hash, a fast non-cryptographic
// 512-bit hash for bulk data built on the AES decryption round.
//
// Meow is meant for kilobyte-and-up inputs: block deduplication, file
// verification, checksum-style comparison. It is not designed for security
// and offers none. Its minimum block is 256 bytes, so tiny inputs spend most
// of their time on padding.
//
// # Quick Start
//
//	d := meowhash.Sum(data, 0)       // widest kernel this CPU supports
//	h := meowhash.Sum64(data, seed)  // first 64 bits
//
// # Processing and Output Widths
//
// Hash is generic over two type parameters: the processing width W (Lanes128,
// Lanes256, Lanes512) and the output element view R (uint32, uint64, Lane128,
// Lane256, Lane512):
//
//	d := meowhash.Hash[meowhash.Lanes128, uint64](data, seed)
//	first := d.At(0)
//
// W never changes the result. Persisted hashes stay valid when wider
// hardware arrives:
//
//	a := meowhash.Hash[meowhash.Lanes128, uint64](data, seed)
//	b := meowhash.Hash[meowhash.Lanes512, uint64](data, seed)
//	// a == b
//
// # Views
//
// A Digest always holds 64 bytes. Views reinterpret those bytes without
// computation, so narrowing after the fact equals hashing narrow directly:
//
//	wide := meowhash.Hash[meowhash.Lanes128, meowhash.Lane512](data, seed)
//	meowhash.As[uint64](wide, 1) == meowhash.Hash[meowhash.Lanes128, uint64](data, seed).At(1)
//
// # Concurrency
//
// All functions are pure and safe for concurrent use.
package meowhash
