package dedup

import (
	"errors"
	"fmt"

	"github.com/hupe1980/meowhash/blobstore"
)

var (
	// ErrNotFound is returned when a chunk or manifest does not exist.
	// It matches blobstore.ErrNotFound as well.
	ErrNotFound = fmt.Errorf("dedup: not found: %w", blobstore.ErrNotFound)

	// ErrChecksumMismatch is returned when verified content does not hash to its key.
	ErrChecksumMismatch = errors.New("dedup: checksum mismatch")

	// ErrInvalidChunkSize is returned for chunk sizes that are not a positive
	// multiple of the hash block size.
	ErrInvalidChunkSize = errors.New("dedup: invalid chunk size")

	// ErrChunkTooLarge is returned by PutChunk for data over MaxChunkSize.
	ErrChunkTooLarge = errors.New("dedup: chunk too large")

	// ErrInvalidKey is returned by ParseKey for malformed keys.
	ErrInvalidKey = errors.New("dedup: invalid key")

	// ErrCorruptManifest is returned when a manifest cannot be decoded or
	// contradicts itself.
	ErrCorruptManifest = errors.New("dedup: corrupt manifest")
)

// ChecksumError describes a chunk whose content does not match its key.
//
// It matches ErrChecksumMismatch via errors.Is.
type ChecksumError struct {
	Want Key
	Got  Key
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("dedup: checksum mismatch: want %s, got %s", e.Want, e.Got)
}

// Is reports whether target is ErrChecksumMismatch.
func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, blobstore.ErrNotFound) && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
