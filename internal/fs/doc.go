// Package fs abstracts the file system calls used by the local blob store so
// that write failures can be injected in tests.
//
// Production code uses [Default], which forwards to package os. Tests wrap it
// in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// Calls take no context; they are short syscalls that cannot be interrupted.
package fs
