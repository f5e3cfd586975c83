package fs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	f, err := lfs.CreateTemp(dir, "blob-*")
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	target := filepath.Join(dir, "blob")
	require.NoError(t, lfs.Rename(f.Name(), target))

	info, err := lfs.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	data, err := lfs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := lfs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blob", entries[0].Name())

	require.NoError(t, lfs.Remove(target))
	_, err = lfs.Stat(target)
	assert.Error(t, err)
}

func TestFaultyFS_FailAfterBytes(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("blob", Fault{FailAfterBytes: 4})

	f, err := ffs.CreateTemp(t.TempDir(), "blob-*")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("1234"))
	require.NoError(t, err)
	_, err = f.Write([]byte("5"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, int64(4), ffs.Written())
}

func TestFaultyFS_GlobalLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.SetLimit(6)
	dir := t.TempDir()

	a, err := ffs.CreateTemp(dir, "a-*")
	require.NoError(t, err)
	defer a.Close()
	b, err := ffs.CreateTemp(dir, "b-*")
	require.NoError(t, err)
	defer b.Close()

	_, err = a.Write([]byte("1234"))
	require.NoError(t, err)
	_, err = b.Write([]byte("567"))
	assert.ErrorIs(t, err, ErrInjected)

	ffs.SetLimit(-1)
	_, err = b.Write([]byte("567"))
	assert.NoError(t, err)
}

func TestFaultyFS_SyncCloseRename(t *testing.T) {
	custom := errors.New("disk on fire")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("sync", Fault{FailAfterBytes: -1, FailOnSync: true})
	ffs.AddRule("close", Fault{FailAfterBytes: -1, FailOnClose: true, Err: custom})
	ffs.AddRule("rename", Fault{FailAfterBytes: -1, FailOnRename: true})
	dir := t.TempDir()

	f, err := ffs.CreateTemp(dir, "sync-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), ErrInjected)
	assert.NoError(t, f.Close())

	f, err = ffs.CreateTemp(dir, "close-*")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), custom)

	f, err = ffs.CreateTemp(dir, "rename-*")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.ErrorIs(t, ffs.Rename(f.Name(), filepath.Join(dir, "x")), ErrInjected)
}

func TestFaultyFS_ReadFile(t *testing.T) {
	dir := t.TempDir()
	f, err := Default.CreateTemp(dir, "chunk-*")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ffs := NewFaultyFS(nil)
	_, err = ffs.ReadFile(f.Name())
	require.NoError(t, err)

	ffs.AddRule("chunk", Fault{FailOnRead: true})
	_, err = ffs.ReadFile(f.Name())
	assert.ErrorIs(t, err, ErrInjected)
}
