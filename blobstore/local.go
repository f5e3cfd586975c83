package blobstore

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/meowhash/internal/fs"
)

const tempPrefix = ".tmp-"

// LocalStore implements BlobStore using the local file system.
// Each blob is one file; slashes in names become directories.
type LocalStore struct {
	root string
	fs   fs.FileSystem
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithFileSystem routes all file system calls through fsys.
func WithFileSystem(fsys fs.FileSystem) LocalOption {
	return func(s *LocalStore) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// The directory is created on first write.
func NewLocalStore(root string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{root: root, fs: fs.Default}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store directory.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(name)), nil
}

// Get reads a blob.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return s.fs.ReadFile(p)
}

// Put writes a blob through a temp file and rename, so readers never see
// a partially written blob.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := s.writeTemp(filepath.Dir(p), data)
	if err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

// PutIfAbsent writes a blob unless it exists. The temp file is hard linked
// into place, which fails atomically when the name is taken.
func (s *LocalStore) PutIfAbsent(ctx context.Context, name string, data []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := s.path(name)
	if err != nil {
		return false, err
	}

	tmp, err := s.writeTemp(filepath.Dir(p), data)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := s.fs.Link(tmp, p); err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// writeTemp writes data to a synced temp file in dir and returns its path.
func (s *LocalStore) writeTemp(dir string, data []byte) (tmp string, err error) {
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	f, err := s.fs.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", err
	}
	tmp = f.Name()
	closed := false
	defer func() {
		if err != nil {
			if !closed {
				_ = f.Close()
			}
			_ = s.fs.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", err
	}
	if err = f.Sync(); err != nil {
		return "", err
	}
	closed = true
	if err = f.Close(); err != nil {
		return "", err
	}
	return tmp, nil
}

// Stat returns the size of a blob.
func (s *LocalStore) Stat(ctx context.Context, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}
	fi, err := s.fs.Stat(p)
	if err != nil {
		return 0, err
	}
	if fi.IsDir() {
		return 0, fmt.Errorf("stat %s: %w", name, ErrNotFound)
	}
	return fi.Size(), nil
}

// Delete removes a blob.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return nil
}

// List walks the store and returns blob names with the given prefix.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	if err := s.walk(ctx, "", prefix, &names); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// walk collects the blobs below the slash separated directory rel.
// Directories that cannot contain a match are skipped.
func (s *LocalStore) walk(ctx context.Context, rel, prefix string, names *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := s.fs.ReadDir(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		if rel != "" && errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		name := path.Join(rel, e.Name())
		if e.IsDir() {
			dir := name + "/"
			if strings.HasPrefix(dir, prefix) || strings.HasPrefix(prefix, dir) {
				if err := s.walk(ctx, name, prefix, names); err != nil {
					return err
				}
			}
			continue
		}
		if strings.HasPrefix(name, prefix) {
			*names = append(*names, name)
		}
	}
	return nil
}
