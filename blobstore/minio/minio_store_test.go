package minio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/meowhash/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Prefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "chunks/ab"},
		{"meow", "meow/chunks/ab"},
		{"/meow/", "meow/chunks/ab"},
	}

	for _, tt := range tests {
		s := NewStore(nil, "bucket", tt.prefix)
		assert.Equal(t, tt.want, s.key("chunks/ab"), tt.prefix)
	}
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("get", "x", nil))

	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, mapError("get", "x", notFound), blobstore.ErrNotFound)

	other := errors.New("boom")
	err := mapError("get", "x", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, blobstore.ErrNotFound)
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := Dial(ctx, endpoint, "test-meowhash", fmt.Sprintf("run-%d/", time.Now().UnixNano()),
		WithCredentials("minioadmin", "minioadmin"),
		WithCreateBucket(),
	)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "chunks/aa/test", data))

	got, err := store.Get(ctx, "chunks/aa/test")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	size, err := store.Stat(ctx, "chunks/aa/test")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"chunks/aa/test"}, names)

	require.NoError(t, store.Delete(ctx, "chunks/aa/test"))

	_, err = store.Get(ctx, "chunks/aa/test")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	_, err = store.Stat(ctx, "chunks/aa/test")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
