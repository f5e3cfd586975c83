// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "meow/")
//	if err != nil {
//	    return err
//	}
//	chunks, err := dedup.New(store)
//
// Or with an existing client:
//
//	store := s3.NewStore(s3sdk.NewFromConfig(cfg), "my-bucket", "meow/")
//
// # Features
//
//   - CRC32C checksums verified server-side on every upload
//   - Multipart uploads for blobs above the part size
//   - Conditional creates (If-None-Match) for content-addressed writes
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
