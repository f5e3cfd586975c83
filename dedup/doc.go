// Package dedup implements a content-addressed, deduplicating chunk store on
// top of any blobstore.BlobStore.
//
// Objects are split into fixed-size chunks. Each chunk is addressed by the
// first 128 bits of its meowhash digest, compressed with the codec package
// and written once; later writes of the same content only add a reference.
// A JSON manifest lists the chunks of an object and is itself addressed by
// the digest of its chunk keys.
//
// Layout inside the backend:
//
//	chunks/<hex[0:2]>/<hex>   compressed chunk frames
//	manifests/<hex>           object manifests
//
// Quick start:
//
//	store, err := dedup.New(blobstore.NewLocalStore("./data"),
//	    dedup.WithCompression(codec.Zstd),
//	)
//	if err != nil {
//	    return err
//	}
//	m, err := store.Put(ctx, file)
//	// ...
//	err = store.Get(ctx, m.Key, os.Stdout)
//
// The hash is not cryptographic. Keys identify content for deduplication;
// they do not authenticate it against an adversary who controls the backend.
package dedup
