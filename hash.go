package meowhash

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/hupe1980/meowhash/internal/mem"
	"github.com/hupe1980/meowhash/internal/simd"
)

// Meow hash version implemented by this package.
const (
	Version     = 1
	VersionName = "0.1 Alpha"
)

// BlockSize is the number of input bytes absorbed per block step.
// Inputs shorter than a block are padded to one.
const BlockSize = simd.BlockSize

// Hash returns the digest of data under seed, compressing blocks with the
// processing width W and viewing the result as elements of type R.
//
// The input is read in place with alignment-agnostic loads. The result does
// not depend on W:
//
//	Hash[Lanes128, uint64](data, seed) == Hash[Lanes512, uint64](data, seed)
func Hash[W Lanes, R Element](data []byte, seed uint64) Digest[R] {
	var w W
	return Digest[R]{b: sum(w.kernel(), data, seed)}
}

// HashAligned is Hash for callers that want the kernel to only ever load
// blocks aligned to the processing width. Aligned input is hashed in place;
// misaligned input is staged through an aligned scratch buffer first.
// The digest is byte-identical to Hash.
func HashAligned[W Lanes, R Element](data []byte, seed uint64) Digest[R] {
	var w W
	k := w.kernel()
	if mem.IsAligned(data, w.Bits()/8) {
		return Digest[R]{b: sum(k, data, seed)}
	}
	return Digest[R]{b: sumStaged(k, data, seed)}
}

// HashOf hashes the raw memory of s. T should be free of pointers and
// padding for the digest to be meaningful across processes; use s[i:j] to
// hash a sub-range.
func HashOf[W Lanes, R Element, T any](s []T, seed uint64) Digest[R] {
	return Hash[W, R](sliceBytes(s), seed)
}

// HashString hashes the bytes of s without copying them.
func HashString[W Lanes, R Element](s string, seed uint64) Digest[R] {
	return Hash[W, R](unsafe.Slice(unsafe.StringData(s), len(s)), seed)
}

// Sum returns the digest of data using the widest kernel this CPU supports.
func Sum(data []byte, seed uint64) Digest[Lane128] {
	return Digest[Lane128]{b: sum(simd.Best(), data, seed)}
}

// Sum32 returns the first 32 bits of the digest of data.
func Sum32(data []byte, seed uint64) uint32 {
	d := sum(simd.Best(), data, seed)
	return binary.LittleEndian.Uint32(d[:])
}

// Sum64 returns the first 64 bits of the digest of data.
func Sum64(data []byte, seed uint64) uint64 {
	d := sum(simd.Best(), data, seed)
	return binary.LittleEndian.Uint64(d[:])
}

// Sum128 returns the first 128 bits of the digest of data.
func Sum128(data []byte, seed uint64) [16]byte {
	d := sum(simd.Best(), data, seed)
	return [16]byte(d[:16])
}

// Sum256 returns the first 256 bits of the digest of data.
func Sum256(data []byte, seed uint64) [32]byte {
	d := sum(simd.Best(), data, seed)
	return [32]byte(d[:32])
}

// Sum512 returns the full 512-bit digest of data.
func Sum512(data []byte, seed uint64) [64]byte {
	return sum(simd.Best(), data, seed)
}

// Implementation returns the name of the AES kernel used by Sum.
func Implementation() string {
	return simd.Best().String()
}

// engine holds the per-call state: the seed/length vector and the four
// stream accumulators. It never outlives one hash call.
type engine struct {
	k  simd.Kernel
	iv [Size]byte
	s  simd.Streams
}

func newEngine(k simd.Kernel, seed, length uint64) engine {
	e := engine{k: k}
	for i := 0; i < Size; i += 16 {
		binary.LittleEndian.PutUint64(e.iv[i:], seed)
		binary.LittleEndian.PutUint64(e.iv[i+8:], seed+length+1)
	}
	for i := range 4 {
		*e.s.Stream(i) = e.iv
	}
	return e
}

// absorb merges the full blocks of p; len(p) must be a multiple of BlockSize.
func (e *engine) absorb(p []byte) {
	e.k.Blocks(&e.s, p)
}

// finish merges the padded tail and folds the streams into the result.
func (e *engine) finish(tail []byte) [Size]byte {
	if len(tail) > 0 {
		var partial simd.Streams
		for i := range 4 {
			*partial.Stream(i) = e.iv
		}
		copy(partial[:], tail)
		e.k.Blocks(&e.s, partial[:])
	}

	ret := e.iv
	for range 4 {
		for i := range 4 {
			st := e.s.Stream(i)
			e.k.Merge(&ret, st)
			rotateLanes(st)
		}
	}

	for range 5 {
		e.k.Merge(&ret, &e.iv)
	}
	return ret
}

// rotateLanes rotates the four 128-bit lanes of s left by one:
// lane0 <- lane1 <- lane2 <- lane3 <- old lane0.
func rotateLanes(s *[Size]byte) {
	var first [16]byte
	copy(first[:], s[:16])
	copy(s[:48], s[16:])
	copy(s[48:], first[:])
}

func sum(k simd.Kernel, data []byte, seed uint64) [Size]byte {
	e := newEngine(k, seed, uint64(len(data)))
	full := len(data) &^ (BlockSize - 1)
	e.absorb(data[:full])
	return e.finish(data[full:])
}

// stagingSize is the amount of misaligned input copied per staging round.
const stagingSize = 64 * BlockSize

var stagingPool = sync.Pool{
	New: func() any {
		buf := mem.AllocAligned(stagingSize)
		return &buf
	},
}

func sumStaged(k simd.Kernel, data []byte, seed uint64) [Size]byte {
	e := newEngine(k, seed, uint64(len(data)))
	full := len(data) &^ (BlockSize - 1)

	if full > 0 {
		bp := stagingPool.Get().(*[]byte)
		buf := *bp
		for off := 0; off < full; {
			n := copy(buf, data[off:full])
			e.absorb(buf[:n])
			off += n
		}
		stagingPool.Put(bp)
	}

	return e.finish(data[full:])
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}
