package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is returned by injected faults that carry no error of their own.
var ErrInjected = errors.New("fs: injected fault")

// Fault describes how files created under a matching name fail.
type Fault struct {
	FailAfterBytes int64 // fail writes past this many bytes per file; -1 disables
	FailOnSync     bool
	FailOnClose    bool
	FailOnRename   bool // also fails Link
	FailOnRead     bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS wraps a FileSystem and injects errors for names that contain a
// registered pattern.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	rules   map[string]Fault
	written int64
	limit   int64
}

// NewFaultyFS wraps fsys, or Default when fsys is nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{
		FS:    fsys,
		rules: make(map[string]Fault),
		limit: -1,
	}
}

// AddRule registers a fault for every name containing pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// SetLimit fails writes once limit bytes have been written across all files.
// A negative limit disables the check.
func (f *FaultyFS) SetLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
}

// Written returns the number of bytes written through f.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

func (f *FaultyFS) match(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			return rule, true
		}
	}
	return Fault{FailAfterBytes: -1}, false
}

func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	file, err := f.FS.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	fault, _ := f.match(file.Name())
	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if fault, ok := f.match(name); ok && fault.FailOnRead {
		return nil, fault.err()
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault, ok := f.match(oldpath); ok && fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Link(oldname, newname string) error {
	if fault, ok := f.match(oldname); ok && fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Link(oldname, newname)
}

func (f *FaultyFS) Remove(name string) error              { return f.FS.Remove(name) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error) { return f.FS.Stat(name) }
func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}
func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) { return f.FS.ReadDir(name) }

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	n := int64(len(p))
	if ff.fault.FailAfterBytes >= 0 && ff.written+n > ff.fault.FailAfterBytes {
		return 0, ff.fault.err()
	}

	ff.fs.mu.Lock()
	exceeded := ff.fs.limit >= 0 && ff.fs.written+n > ff.fs.limit
	if !exceeded {
		ff.fs.written += n
	}
	ff.fs.mu.Unlock()
	if exceeded {
		return 0, ff.fault.err()
	}

	written, err := ff.File.Write(p)
	ff.written += int64(written)
	return written, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.err()
	}
	return ff.File.Close()
}
