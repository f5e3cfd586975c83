package meowhash

import (
	"encoding/binary"
	"encoding/hex"
)

// Size is the width of every digest in bytes, whatever its element view.
const Size = 64

// Lane128 is a 128-bit digest element in memory order.
type Lane128 [16]byte

// Lane256 is a 256-bit digest element in memory order.
type Lane256 [32]byte

// Lane512 is a 512-bit digest element in memory order.
type Lane512 [64]byte

// Element is the set of element views a Digest supports.
// uint32 and uint64 elements are decoded little-endian from their bytes.
type Element interface {
	uint32 | uint64 | Lane128 | Lane256 | Lane512
}

// Digest is a 64-byte hash value viewed as 64/sizeof(E) elements of type E.
//
// The backing bytes never change with the view: Convert and As reinterpret
// the same 64 bytes, so a 64-bit element i is always bytes [8i, 8i+8) of any
// other view of the same digest. Digests are comparable with ==.
type Digest[E Element] struct {
	b [Size]byte
}

// DigestFromBytes copies up to Size bytes of b into a digest.
// Shorter inputs are zero padded.
func DigestFromBytes[E Element](b []byte) Digest[E] {
	var d Digest[E]
	copy(d.b[:], b)
	return d
}

// elemSize returns sizeof(E) in bytes.
func elemSize[E Element]() int {
	var e E
	switch any(e).(type) {
	case uint32:
		return 4
	case uint64:
		return 8
	case Lane128:
		return 16
	case Lane256:
		return 32
	default:
		return 64
	}
}

// Bits returns the element width of the view in bits.
func (d Digest[E]) Bits() int {
	return elemSize[E]() * 8
}

// Len returns the number of elements in the view.
func (d Digest[E]) Len() int {
	return Size / elemSize[E]()
}

// At returns element i. It panics unless 0 <= i < d.Len().
func (d Digest[E]) At(i int) E {
	return decode[E](d.b[:], i)
}

// Set overwrites element i. It panics unless 0 <= i < d.Len().
func (d *Digest[E]) Set(i int, v E) {
	n := elemSize[E]()
	b := d.b[n*i : n*(i+1)]
	switch v := any(v).(type) {
	case uint32:
		binary.LittleEndian.PutUint32(b, v)
	case uint64:
		binary.LittleEndian.PutUint64(b, v)
	case Lane128:
		copy(b, v[:])
	case Lane256:
		copy(b, v[:])
	case Lane512:
		copy(b, v[:])
	}
}

// Equal reports whether d and o hold the same 64 bytes.
func (d Digest[E]) Equal(o Digest[E]) bool {
	return d.b == o.b
}

// Bytes returns a copy of all 64 bytes.
func (d Digest[E]) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, d.b[:])
	return out
}

// Prefix returns a copy of the first n bytes, the form in which truncated
// hashes (4, 8, 16, 32 or 64 bytes) are usually persisted.
// n is clamped to [0, Size].
func (d Digest[E]) Prefix(n int) []byte {
	n = max(0, min(n, Size))
	out := make([]byte, n)
	copy(out, d.b[:n])
	return out
}

// String returns the lower-case hex encoding of all 64 bytes.
func (d Digest[E]) String() string {
	return hex.EncodeToString(d.b[:])
}

// As returns the element of width A at index, reading bytes
// [sizeof(A)*index, sizeof(A)*(index+1)) of d.
//
// The index is a precondition, not a checked error: it panics unless
// sizeof(A)*(index+1) <= Size.
func As[A Element, E Element](d Digest[E], index int) A {
	return decode[A](d.b[:], index)
}

// Convert reinterprets d with a different element view. The 64 bytes are
// copied verbatim; nothing is truncated or recomputed.
func Convert[A Element, E Element](d Digest[E]) Digest[A] {
	return Digest[A]{b: d.b}
}

func decode[E Element](b []byte, i int) E {
	var e E
	n := elemSize[E]()
	src := b[n*i : n*(i+1)]
	switch p := any(&e).(type) {
	case *uint32:
		*p = binary.LittleEndian.Uint32(src)
	case *uint64:
		*p = binary.LittleEndian.Uint64(src)
	case *Lane128:
		copy(p[:], src)
	case *Lane256:
		copy(p[:], src)
	case *Lane512:
		copy(p[:], src)
	}
	return e
}
