package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreTests exercises the BlobStore contract against s.
func runStoreTests(t *testing.T, s BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "missing/blob")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = s.Stat(ctx, "missing/blob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGetStat", func(t *testing.T) {
		data := []byte("hello world, this is a test blob")
		require.NoError(t, s.Put(ctx, "chunks/ab/abcdef", data))

		got, err := s.Get(ctx, "chunks/ab/abcdef")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		size, err := s.Stat(ctx, "chunks/ab/abcdef")
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), size)
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "empty", nil))

		got, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)

		size, err := s.Stat(ctx, "empty")
		require.NoError(t, err)
		assert.Equal(t, int64(0), size)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "over", []byte("one")))
		require.NoError(t, s.Put(ctx, "over", []byte("three")))

		got, err := s.Get(ctx, "over")
		require.NoError(t, err)
		assert.Equal(t, "three", string(got))
	})

	t.Run("NoAliasing", func(t *testing.T) {
		data := []byte("abc")
		require.NoError(t, s.Put(ctx, "alias", data))
		data[0] = 'x'

		got, err := s.Get(ctx, "alias")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		got[1] = 'y'
		again, err := s.Get(ctx, "alias")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("List", func(t *testing.T) {
		for _, name := range []string{"list/b", "list/a", "list/sub/c", "other/d"} {
			require.NoError(t, s.Put(ctx, name, []byte(name)))
		}

		names, err := s.List(ctx, "list/")
		require.NoError(t, err)
		assert.Equal(t, []string{"list/a", "list/b", "list/sub/c"}, names)

		names, err = s.List(ctx, "nothing/")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "del/x", []byte("x")))
		require.NoError(t, s.Delete(ctx, "del/x"))

		_, err := s.Get(ctx, "del/x")
		assert.ErrorIs(t, err, ErrNotFound)

		// Idempotent.
		assert.NoError(t, s.Delete(ctx, "del/x"))
	})

	t.Run("InvalidName", func(t *testing.T) {
		for _, name := range []string{"", "/abs", "../escape", "a/../b", "a//b"} {
			assert.ErrorIs(t, s.Put(ctx, name, []byte("x")), ErrInvalidName, name)
		}
	})
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"chunks/ab/abcd", true},
		{"manifest", true},
		{"", false},
		{"/root", false},
		{"a/../b", false},
		{"..", false},
		{"./a", false},
		{"a/", false},
		{`a\b`, false},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidName, tt.name)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	runStoreTests(t, s)
	assert.Positive(t, s.Len())
}

func TestMemoryStore_PutIfAbsent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.PutIfAbsent(ctx, "k", []byte("first"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.PutIfAbsent(ctx, "k", []byte("second"))
	require.NoError(t, err)
	assert.False(t, created)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	_, err = s.PutIfAbsent(ctx, "../k", nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	var _ ConditionalPutter = s
}
