package dedup

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/hupe1980/meowhash/codec"
)

// ManifestVersion is the manifest format written by this package.
const ManifestVersion = 1

// Manifest describes one stored object.
type Manifest struct {
	Version     int        `json:"version"`
	Key         Key        `json:"key"`
	Size        int64      `json:"size"`
	Seed        uint64     `json:"seed"`
	ChunkSize   int        `json:"chunk_size"`
	Compression string     `json:"compression"`
	Chunks      []ChunkRef `json:"chunks"`
}

// ChunkRef locates one chunk of an object.
type ChunkRef struct {
	Key    Key   `json:"key"`
	Offset int64 `json:"offset"`
	Size   int   `json:"size"`
}

// manifestKey returns the key of an object: the digest of its chunk keys in order.
func manifestKey(chunks []ChunkRef, seed uint64) Key {
	buf := make([]byte, 0, len(chunks)*len(Key{}))
	for _, c := range chunks {
		buf = append(buf, c.Key[:]...)
	}
	return KeyOf(buf, seed)
}

func encodeManifest(m *Manifest) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func decodeManifest(data []byte, want Key) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptManifest, err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("%w: unsupported version %d (expected %d)", ErrCorruptManifest, m.Version, ManifestVersion)
	}
	if m.Key != want {
		return nil, fmt.Errorf("%w: key %s stored under %s", ErrCorruptManifest, m.Key, want)
	}
	if _, err := codec.ParseType(m.Compression); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptManifest, err)
	}

	var off int64
	for i, c := range m.Chunks {
		if c.Offset != off || c.Size <= 0 {
			return nil, fmt.Errorf("%w: chunk %d at offset %d", ErrCorruptManifest, i, c.Offset)
		}
		off += int64(c.Size)
	}
	if off != m.Size {
		return nil, fmt.Errorf("%w: chunks cover %d of %d bytes", ErrCorruptManifest, off, m.Size)
	}
	if manifestKey(m.Chunks, m.Seed) != m.Key {
		return nil, fmt.Errorf("%w: chunk list does not match key %s", ErrCorruptManifest, m.Key)
	}
	return &m, nil
}
