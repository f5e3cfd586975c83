// Package hash provides CRC32-Castagnoli checksums for transport integrity.
//
// Meow digests name content; they are not meant to detect transfer damage
// on their own in a way object stores understand. Uploads therefore also
// carry a CRC32C, the checksum S3 verifies server-side:
//
//	sum := hash.CRC32C(data)
//	header := hash.CRC32CBase64(data) // x-amz-checksum-crc32c
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension when available.
package hash
