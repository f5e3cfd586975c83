package mmap

import "errors"

// AccessPattern hints to the kernel how a mapping will be read.
type AccessPattern int

const (
	// AccessDefault gives no advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects one front to back pass.
	AccessSequential
	// AccessRandom expects scattered reads.
	AccessRandom
	// AccessWillNeed asks for read-ahead of the whole mapping.
	AccessWillNeed
	// AccessDontNeed releases cached pages.
	AccessDontNeed
)

var (
	// ErrClosed is returned when a closed mapping is used.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files that do not fit in the address space.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrNotRegular is returned for pipes, devices and directories, which
	// have to be read instead.
	ErrNotRegular = errors.New("mmap: not a regular file")
)
