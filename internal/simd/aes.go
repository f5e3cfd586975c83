package simd

import (
	"encoding/binary"
	"math/bits"
)

// AES tables. The forward S-box is only needed to derive the inverse one
// (and by the tests, which rebuild a full AES-128 decryption from the round).
var (
	sbox    [256]byte
	invSbox [256]byte

	// td0..td3 fold InvSubBytes and InvMixColumns into one lookup per byte,
	// the same layout crypto/aes uses for its generic decryption rounds.
	td0, td1, td2, td3 [256]uint32
)

func init() {
	buildSbox()

	for i := range 256 {
		s := invSbox[i]
		w := uint32(gfMul(s, 0x0e))<<24 | uint32(gfMul(s, 0x09))<<16 |
			uint32(gfMul(s, 0x0d))<<8 | uint32(gfMul(s, 0x0b))
		td0[i] = w
		td1[i] = bits.RotateLeft32(w, -8)
		td2[i] = bits.RotateLeft32(w, -16)
		td3[i] = bits.RotateLeft32(w, -24)
	}
}

// buildSbox walks the multiplicative group of GF(2^8) with generator 3,
// pairing each element with its inverse and applying the affine transform.
func buildSbox() {
	var p, q byte = 1, 1
	for {
		// p *= 3
		if p&0x80 != 0 {
			p = p ^ p<<1 ^ 0x1b
		} else {
			p = p ^ p<<1
		}

		// q /= 3
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		x := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^
			bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		sbox[p] = x ^ 0x63

		if p == 1 {
			break
		}
	}
	sbox[0] = 0x63

	for i := range 256 {
		invSbox[sbox[i]] = byte(i)
	}
}

// gfMul multiplies in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func gfMul(a, b byte) byte {
	var r byte
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return r
}

// decRound applies one AES decryption round to state in place:
// InvShiftRows, InvSubBytes, InvMixColumns, then XOR with key.
// This is exactly what the AESDEC instruction computes.
func decRound(state, key *[16]byte) {
	s0 := binary.BigEndian.Uint32(state[0:4])
	s1 := binary.BigEndian.Uint32(state[4:8])
	s2 := binary.BigEndian.Uint32(state[8:12])
	s3 := binary.BigEndian.Uint32(state[12:16])

	t0 := td0[uint8(s0>>24)] ^ td1[uint8(s3>>16)] ^ td2[uint8(s2>>8)] ^ td3[uint8(s1)]
	t1 := td0[uint8(s1>>24)] ^ td1[uint8(s0>>16)] ^ td2[uint8(s3>>8)] ^ td3[uint8(s2)]
	t2 := td0[uint8(s2>>24)] ^ td1[uint8(s1>>16)] ^ td2[uint8(s0>>8)] ^ td3[uint8(s3)]
	t3 := td0[uint8(s3>>24)] ^ td1[uint8(s2>>16)] ^ td2[uint8(s1>>8)] ^ td3[uint8(s0)]

	binary.BigEndian.PutUint32(state[0:4], t0^binary.BigEndian.Uint32(key[0:4]))
	binary.BigEndian.PutUint32(state[4:8], t1^binary.BigEndian.Uint32(key[4:8]))
	binary.BigEndian.PutUint32(state[8:12], t2^binary.BigEndian.Uint32(key[8:12]))
	binary.BigEndian.PutUint32(state[12:16], t3^binary.BigEndian.Uint32(key[12:16]))
}

func mergeGeneric(a, b *[StreamSize]byte) {
	decRound((*[16]byte)(a[0:16]), (*[16]byte)(b[0:16]))
	decRound((*[16]byte)(a[16:32]), (*[16]byte)(b[16:32]))
	decRound((*[16]byte)(a[32:48]), (*[16]byte)(b[32:48]))
	decRound((*[16]byte)(a[48:64]), (*[16]byte)(b[48:64]))
}

func blocksGeneric(s *Streams, p []byte) {
	for len(p) >= BlockSize {
		// Four streams, four 128-bit lanes each, in memory order.
		for i := 0; i < BlockSize; i += 16 {
			decRound((*[16]byte)(s[i:i+16]), (*[16]byte)(p[i:i+16]))
		}
		p = p[BlockSize:]
	}
}
