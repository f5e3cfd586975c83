// Package codec frames and compresses stored chunks.
//
// Every frame is self-describing:
//
//	[type u8][uncompressed size u32 LE][payload size u32 LE][payload...]
//
// so Decompress never needs to be told which algorithm produced a frame.
// Changing a Type value is a breaking change for persisted data.
//
// # Algorithms
//
//   - None: payload stored as-is
//   - LZ4: block compression, fast, good for hot data
//   - Zstd: better ratio, good for cold data
//
// Compress falls back to None whenever compression saves less than 10%.
package codec
