// Package blobstore provides storage abstraction for immutable, named blobs.
//
// BlobStore is small: whole-blob reads and writes plus listing. Content-addressed
// callers never overwrite a name with different bytes, so there are no partial
// reads or appends. Stores that can create a blob only if it is missing
// implement ConditionalPutter; stores that can warm a cache implement Prefetcher.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - LocalStore: one file per blob, atomic temp-file-and-rename writes,
//     conditional writes by hard link
//   - CachingStore: LRU of recently read blobs in front of any store
//   - s3.Store: Amazon S3 via aws-sdk-go-v2
//   - minio.Store: MinIO and other S3-compatible services via minio-go
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error
//	    Stat(ctx, name) (int64, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Missing blobs must produce an error satisfying errors.Is(err, ErrNotFound).
// Delete of a missing blob is not an error.
package blobstore
