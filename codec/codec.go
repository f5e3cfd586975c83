package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/meowhash/internal/conv"
)

var (
	// ErrCorrupt is returned when a frame is truncated or its sizes disagree
	// with its payload.
	ErrCorrupt = errors.New("codec: corrupt frame")

	// ErrUnknownType is returned for compression types this package does not know.
	ErrUnknownType = errors.New("codec: unknown compression type")
)

// Type identifies the compression algorithm of a frame.
type Type uint8

const (
	// None stores the payload uncompressed.
	None Type = 0
	// LZ4 uses LZ4 block compression.
	LZ4 Type = 1
	// Zstd uses Zstandard at the default level.
	Zstd Type = 2
)

// HeaderSize is the size of the frame header in bytes.
const HeaderSize = 9

// minSavings is the fraction of the input compression must save for the
// compressed payload to be kept.
const minSavings = 0.1

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType parses a compression name (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zstandard":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compress returns data framed with the given compression type.
// The returned frame never aliases data.
func Compress(data []byte, t Type) ([]byte, error) {
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("codec: input too large: %w", err)
	}

	var payload []byte

	switch t {
	case None:
	case LZ4:
		payload, err = compressLZ4(data)
	case Zstd:
		payload = compressZstd(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	if err != nil {
		return nil, fmt.Errorf("codec: %s compress: %w", t, err)
	}

	if t == None || len(payload) == 0 || float64(len(payload)) > float64(len(data))*(1-minSavings) {
		return frame(None, size, data), nil
	}
	return frame(t, size, payload), nil
}

// frame prepends the header. payload is at most size bytes here.
func frame(t Type, size uint32, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	out[0] = byte(t)
	binary.LittleEndian.PutUint32(out[1:], size)
	binary.LittleEndian.PutUint32(out[5:], uint32(len(payload)))
	copy(out[HeaderSize:], payload)
	return out
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZstd(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// Header describes a frame without decoding its payload.
type Header struct {
	Type             Type
	UncompressedSize uint32
	PayloadSize      uint32
}

// ReadHeader parses the header of frame.
func ReadHeader(frame []byte) (Header, error) {
	if len(frame) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(frame))
	}
	h := Header{
		Type:             Type(frame[0]),
		UncompressedSize: binary.LittleEndian.Uint32(frame[1:]),
		PayloadSize:      binary.LittleEndian.Uint32(frame[5:]),
	}
	if uint64(len(frame)-HeaderSize) != uint64(h.PayloadSize) {
		return Header{}, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(frame)-HeaderSize, h.PayloadSize)
	}
	return h, nil
}

// Decompress decodes a frame produced by Compress. Frames declaring more than
// maxSize decoded bytes fail with ErrCorrupt before anything is allocated.
func Decompress(frame []byte, maxSize int) ([]byte, error) {
	h, err := ReadHeader(frame)
	if err != nil {
		return nil, err
	}
	if maxSize < 0 || uint64(h.UncompressedSize) > uint64(maxSize) {
		return nil, fmt.Errorf("%w: header declares %d bytes, limit is %d", ErrCorrupt, h.UncompressedSize, maxSize)
	}
	payload := frame[HeaderSize:]

	switch h.Type {
	case None:
		if h.UncompressedSize != h.PayloadSize {
			return nil, fmt.Errorf("%w: stored frame size mismatch", ErrCorrupt)
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil

	case LZ4:
		out := make([]byte, h.UncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
		}
		if uint32(n) != h.UncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil

	case Zstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, h.UncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
		if uint32(len(out)) != h.UncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(h.Type))
	}
}
