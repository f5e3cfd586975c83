// Package mmap maps files read-only into memory so they can be hashed in
// place.
//
//	m, err := mmap.Open("image.iso")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	d := meowhash.HashAligned[meowhash.Lanes512, meowhash.Lane128](m.Bytes(), 0)
//
// Mappings start on a page boundary, so aligned kernels read them without
// staging. Unix uses mmap(2) and madvise(2); on Windows the file is mapped
// with MapViewOfFile and Advise is a no-op. Elsewhere Open fails with
// errors.ErrUnsupported.
//
// Bytes must not be used after Close returns.
package mmap
