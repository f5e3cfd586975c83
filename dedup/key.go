package dedup

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/hupe1980/meowhash"
)

// Key addresses a chunk or manifest: the first 128-bit element of the
// meowhash digest of its content.
type Key [16]byte

// KeyOf returns the key of data under seed.
func KeyOf(data []byte, seed uint64) Key {
	return Key(meowhash.Sum(data, seed).At(0))
}

// ParseKey parses the 32-character hex form produced by Key.String.
func ParseKey(s string) (Key, error) {
	var k Key
	if len(s) != 2*len(k) {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	if _, err := hex.Decode(k[:], []byte(s)); err != nil {
		return Key{}, fmt.Errorf("%w: %q: %w", ErrInvalidKey, s, err)
	}
	return k, nil
}

// String returns the lower-case hex form of k.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool {
	return k == Key{}
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// view32 is the 32-bit view of the digest behind k.
func (k Key) view32() uint32 {
	return binary.LittleEndian.Uint32(k[:4])
}

func chunkName(k Key) string {
	h := k.String()
	return "chunks/" + h[:2] + "/" + h
}

func manifestName(k Key) string {
	return "manifests/" + k.String()
}
