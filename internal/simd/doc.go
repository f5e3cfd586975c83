// Package simd provides the AES decryption round kernels behind meowhash.
//
// # Supported Platforms
//
//   - x86-64: VAES on ZMM (AVX-512F), VAES on YMM (AVX2), AES-NI with AVX
//   - everything else: table-driven pure Go round
//
// Runtime CPU feature detection selects the widest implementation.
// Set MEOWHASH_SIMD=generic|aesni|vaes256|vaes512 to cap the selection, or
// build with -tags noasm to force the generic Go fallback.
//
// # Operations
//
//   - Merge: one AESDEC round on each 128-bit lane of a 64-byte stream
//   - Blocks: Merge of every 256-byte block into four streams
//
// Every kernel is bit-identical to the generic one. The processing width
// only changes how many lanes one instruction covers, which is what lets a
// hash computed with 128-bit lanes be reproduced with 512-bit lanes.
package simd
