package simd

import (
	"crypto/aes"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSbox(t *testing.T) {
	assert.Equal(t, byte(0x63), sbox[0x00])
	assert.Equal(t, byte(0x7c), sbox[0x01])
	assert.Equal(t, byte(0xed), sbox[0x53])
	assert.Equal(t, byte(0x16), sbox[0xff])

	assert.Equal(t, byte(0x52), invSbox[0x00])
	assert.Equal(t, byte(0x00), invSbox[0x63])
	assert.Equal(t, byte(0x7d), invSbox[0xff])

	for i := range 256 {
		assert.Equal(t, byte(i), invSbox[sbox[i]])
	}
}

func TestDecryptionTables(t *testing.T) {
	// Same values as crypto/aes td0..td3.
	assert.Equal(t, uint32(0x51f4a750), td0[0])
	assert.Equal(t, uint32(0x5051f4a7), td1[0])
	assert.Equal(t, uint32(0xa75051f4), td2[0])
	assert.Equal(t, uint32(0xf4a75051), td3[0])
}

func TestGFMul(t *testing.T) {
	// FIPS-197 section 4.2 example.
	assert.Equal(t, byte(0xc1), gfMul(0x57, 0x83))
	assert.Equal(t, byte(0xfe), gfMul(0x57, 0x13))
	assert.Equal(t, byte(0x57), gfMul(0x57, 0x01))
	assert.Equal(t, byte(0x00), gfMul(0x57, 0x00))
}

// decryptAES128 rebuilds the equivalent inverse cipher from decRound so that
// the round can be checked against crypto/aes.
func decryptAES128(key, ct []byte) []byte {
	w := expandKey128(key)

	roundKey := func(r int) [16]byte {
		var k [16]byte
		for i := range 4 {
			binary.BigEndian.PutUint32(k[4*i:], w[4*r+i])
		}
		return k
	}

	var state [16]byte
	last := roundKey(10)
	for i := range state {
		state[i] = ct[i] ^ last[i]
	}

	for r := 9; r >= 1; r-- {
		k := roundKey(r)
		invMixColumns(&k)
		decRound(&state, &k)
	}

	// Final round: InvShiftRows + InvSubBytes + AddRoundKey.
	first := roundKey(0)
	var out [16]byte
	for c := range 4 {
		for r := range 4 {
			out[r+4*c] = invSbox[state[r+4*((c-r+4)%4)]] ^ first[r+4*c]
		}
	}
	return out[:]
}

func expandKey128(key []byte) [44]uint32 {
	var w [44]uint32
	for i := range 4 {
		w[i] = binary.BigEndian.Uint32(key[4*i:])
	}
	rcon := uint32(1)
	for i := 4; i < 44; i++ {
		t := w[i-1]
		if i%4 == 0 {
			t = t<<8 | t>>24
			t = uint32(sbox[t>>24])<<24 | uint32(sbox[t>>16&0xff])<<16 |
				uint32(sbox[t>>8&0xff])<<8 | uint32(sbox[t&0xff])
			t ^= rcon << 24
			rcon = uint32(gfMul(byte(rcon), 2))
		}
		w[i] = w[i-4] ^ t
	}
	return w
}

func invMixColumns(k *[16]byte) {
	for c := range 4 {
		a0, a1, a2, a3 := k[4*c], k[4*c+1], k[4*c+2], k[4*c+3]
		k[4*c] = gfMul(a0, 0x0e) ^ gfMul(a1, 0x0b) ^ gfMul(a2, 0x0d) ^ gfMul(a3, 0x09)
		k[4*c+1] = gfMul(a0, 0x09) ^ gfMul(a1, 0x0e) ^ gfMul(a2, 0x0b) ^ gfMul(a3, 0x0d)
		k[4*c+2] = gfMul(a0, 0x0d) ^ gfMul(a1, 0x09) ^ gfMul(a2, 0x0e) ^ gfMul(a3, 0x0b)
		k[4*c+3] = gfMul(a0, 0x0b) ^ gfMul(a1, 0x0d) ^ gfMul(a2, 0x09) ^ gfMul(a3, 0x0e)
	}
}

func TestDecRoundFIPS197(t *testing.T) {
	// FIPS-197 appendix C.1.
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	ct, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	pt := decryptAES128(key, ct)
	assert.Equal(t, "00112233445566778899aabbccddeeff", hex.EncodeToString(pt))
}

func TestDecRoundMatchesCryptoAES(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for range 64 {
		key := make([]byte, 16)
		pt := make([]byte, 16)
		rng.Read(key)
		rng.Read(pt)

		block, err := aes.NewCipher(key)
		require.NoError(t, err)

		ct := make([]byte, 16)
		block.Encrypt(ct, pt)

		assert.Equal(t, pt, decryptAES128(key, ct))
	}
}

func TestMergeGenericIsLaneWise(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	var a, b [StreamSize]byte
	rng.Read(a[:])
	rng.Read(b[:])

	want := a
	for lane := range 4 {
		decRound((*[16]byte)(want[16*lane:16*lane+16]), (*[16]byte)(b[16*lane:16*lane+16]))
	}

	mergeGeneric(&a, &b)
	assert.Equal(t, want, a)
}
