package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/hupe1980/meowhash/blobstore"
	"github.com/hupe1980/meowhash/blobstore/minio"
	"github.com/hupe1980/meowhash/blobstore/s3"
)

// storeFlags configures the chunk store backend shared by put and get.
type storeFlags struct {
	location    string
	compression string
	chunkSize   string
	seed        uint64
	concurrency int
	rateLimit   string
	cacheSize   string
	verify      bool
	region      string
	insecure    bool
	metricsFile string
}

// openBackend opens the blob store named by location:
//
//	/path/to/dir                  local directory
//	s3://bucket/prefix            Amazon S3 (default AWS credential chain)
//	minio://host:port/bucket/pfx  MinIO, keys from MINIO_ACCESS_KEY and MINIO_SECRET_KEY
func openBackend(ctx context.Context, location, region string, insecure bool) (blobstore.BlobStore, error) {
	if !strings.Contains(location, "://") {
		if location == "" {
			return nil, fmt.Errorf("missing --store")
		}
		return blobstore.NewLocalStore(location), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid --store %q: %w", location, err)
	}

	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Path), nil

	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("invalid --store %q: missing bucket", location)
		}
		var optFns []func(*config.LoadOptions) error
		if region != "" {
			optFns = append(optFns, config.WithRegion(region))
		}
		return s3.NewFromConfig(ctx, u.Host, strings.Trim(u.Path, "/"), optFns...)

	case "minio":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("invalid --store %q: want minio://host/bucket/prefix", location)
		}
		opts := []minio.DialOption{
			minio.WithCredentials(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY")),
			minio.WithTLS(!insecure),
		}
		if region != "" {
			opts = append(opts, minio.WithRegion(region))
		}
		return minio.Dial(ctx, u.Host, bucket, prefix, opts...)

	default:
		return nil, fmt.Errorf("invalid --store %q: unknown scheme %q", location, u.Scheme)
	}
}
