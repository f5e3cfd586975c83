package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hupe1980/meowhash/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store implements blobstore.BlobStore for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string // empty or ends with "/"
}

var _ blobstore.BlobStore = (*Store)(nil)

// NewStore creates a new MinIO blob store.
// rootPrefix is prepended to all keys (e.g. "meow/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	prefix := strings.Trim(rootPrefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

type dialOptions struct {
	accessKey string
	secretKey string
	secure    bool
	region    string
	create    bool
}

// DialOption configures Dial.
type DialOption func(*dialOptions)

// WithCredentials sets static V4 credentials.
func WithCredentials(accessKey, secretKey string) DialOption {
	return func(o *dialOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithTLS enables HTTPS.
func WithTLS(secure bool) DialOption {
	return func(o *dialOptions) { o.secure = secure }
}

// WithRegion sets the bucket region.
func WithRegion(region string) DialOption {
	return func(o *dialOptions) { o.region = region }
}

// WithCreateBucket creates the bucket if it does not exist.
func WithCreateBucket() DialOption {
	return func(o *dialOptions) { o.create = true }
}

// Dial connects to endpoint and returns a store for bucket.
func Dial(ctx context.Context, endpoint, bucket, rootPrefix string, opts ...DialOption) (*Store, error) {
	var o dialOptions
	for _, opt := range opts {
		opt(&o)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.accessKey, o.secretKey, ""),
		Secure: o.secure,
		Region: o.region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: connect %s: %w", endpoint, err)
	}

	if o.create {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("minio: bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: o.region}); err != nil {
				return nil, fmt.Errorf("minio: make bucket %s: %w", bucket, err)
			}
		}
	}

	return NewStore(client, bucket, rootPrefix), nil
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// Get downloads a blob.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapError("get", name, err)
	}
	defer func() { _ = obj.Close() }()

	// GetObject is lazy; a missing key surfaces on first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapError("get", name, err)
	}
	return data, nil
}

// Put writes a blob atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if err := blobstore.ValidateName(name); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:    "application/octet-stream",
		SendContentMd5: false,
	})
	return mapError("put", name, err)
}

// Stat returns the size of a blob.
func (s *Store) Stat(ctx context.Context, name string) (int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(name), minio.StatObjectOptions{})
	if err != nil {
		return 0, mapError("stat", name, err)
	}
	return info.Size, nil
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil && isNotFound(err) {
		return nil // already gone
	}
	return mapError("delete", name, err)
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.key(prefix),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio: list %q: %w", prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if name != "" {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	default:
		return false
	}
}

func mapError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fmt.Errorf("minio: %s %s: %w", op, name, blobstore.ErrNotFound)
	}
	return fmt.Errorf("minio: %s %s: %w", op, name, err)
}
