package dedup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/meowhash/blobstore"
	"github.com/hupe1980/meowhash/codec"
	"github.com/hupe1980/meowhash/internal/cache"
	"github.com/hupe1980/meowhash/internal/resource"
)

// Store is a content-addressed chunk store. It is safe for concurrent use.
//
// Limits set through options (concurrency, memory, rate) are shared by all
// calls on the same Store.
type Store struct {
	backend blobstore.BlobStore
	opts    options
	rc      *resource.Controller
	cache   cache.BlockCache // nil when disabled

	mu    sync.Mutex
	known *roaring.Bitmap // 32-bit views of chunks seen present

	chunksWritten      atomic.Int64
	chunksDeduplicated atomic.Int64
	bytesIn            atomic.Int64
	bytesStored        atomic.Int64
	bytesRead          atomic.Int64
}

// Stats is a snapshot of Store counters.
type Stats struct {
	ChunksWritten      int64
	ChunksDeduplicated int64
	BytesIn            int64 // raw chunk bytes passed to PutChunk/Put
	BytesStored        int64 // frame bytes written to the backend
	BytesRead          int64 // frame bytes read from the backend
	KnownChunks        uint64
	CacheHits          int64
	CacheMisses        int64
}

// New creates a Store over backend.
func New(backend blobstore.BlobStore, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	s := &Store{
		backend: backend,
		opts:    o,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   o.memoryLimit,
			MaxWorkers:         int64(o.concurrency),
			IOLimitBytesPerSec: o.rateLimit,
		}),
		known: roaring.New(),
	}
	if o.cacheBytes > 0 {
		s.cache = cache.NewLRUBlockCache(o.cacheBytes, nil)
	}
	return s, nil
}

// ChunkSize returns the configured chunk size.
func (s *Store) ChunkSize() int {
	return s.opts.chunkSize
}

// PutChunk stores data as one chunk and returns its key. stored is false
// when the chunk was already present and nothing was written.
func (s *Store) PutChunk(ctx context.Context, data []byte) (key Key, stored bool, err error) {
	if len(data) > MaxChunkSize {
		return Key{}, false, fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, len(data))
	}
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return Key{}, false, err
	}
	defer s.rc.ReleaseWorker()

	return s.putChunk(ctx, data)
}

func (s *Store) putChunk(ctx context.Context, data []byte) (key Key, stored bool, err error) {
	start := time.Now()
	key = s.hash(data, s.opts.seed)
	s.bytesIn.Add(int64(len(data)))

	defer func() {
		s.opts.metricsCollector.RecordPut(len(data), err == nil && !stored, time.Since(start), err)
		s.opts.logger.LogPut(ctx, key.String(), int64(len(data)), stored, err)
	}()

	stored, err = s.writeChunk(ctx, key, data)
	if err != nil {
		return key, false, err
	}

	s.markKnown(key)
	if !stored {
		s.chunksDeduplicated.Add(1)
	}
	return key, stored, nil
}

// writeChunk writes data under key unless the backend already has it.
//
// Stores with conditional puts get one round trip for chunks not yet in the
// known set; a chunk in the known set is confirmed with Stat first so that
// it is neither compressed nor uploaded again.
func (s *Store) writeChunk(ctx context.Context, key Key, data []byte) (bool, error) {
	name := chunkName(key)

	cp, conditional := s.backend.(blobstore.ConditionalPutter)
	if !conditional || s.mayContain(key) {
		ok, err := s.exists(ctx, name)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}

	frame, err := codec.Compress(data, s.opts.compression)
	if err != nil {
		return false, err
	}
	if err := s.rc.AcquireIO(ctx, len(frame)); err != nil {
		return false, err
	}

	created := true
	if conditional {
		created, err = cp.PutIfAbsent(ctx, name, frame)
	} else {
		err = s.backend.Put(ctx, name, frame)
	}
	if err != nil {
		return false, fmt.Errorf("dedup: write chunk %s: %w", key, err)
	}

	if created {
		s.chunksWritten.Add(1)
		s.bytesStored.Add(int64(len(frame)))
	}
	return created, nil
}

// GetChunk returns the content of the chunk addressed by key.
func (s *Store) GetChunk(ctx context.Context, key Key) ([]byte, error) {
	if err := s.rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer s.rc.ReleaseWorker()

	return s.getChunk(ctx, key, s.opts.seed, MaxChunkSize)
}

// getChunk fetches and decodes one chunk. Frames declaring more than limit
// bytes are rejected as corrupt.
func (s *Store) getChunk(ctx context.Context, key Key, seed uint64, limit int) (data []byte, err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordGet(len(data), time.Since(start), err)
		s.opts.logger.LogGet(ctx, key.String(), int64(len(data)), err)
	}()

	ck := cache.CacheKey{Kind: cache.CacheKindChunk, Name: key.String()}
	if s.cache != nil {
		if b, ok := s.cache.Get(ctx, ck); ok {
			return bytes.Clone(b), nil
		}
	}

	frame, err := s.backend.Get(ctx, chunkName(key))
	if err != nil {
		return nil, translateError(err)
	}
	s.bytesRead.Add(int64(len(frame)))

	out, err := codec.Decompress(frame, limit)
	if err != nil {
		return nil, fmt.Errorf("dedup: chunk %s: %w", key, err)
	}

	if s.opts.verify {
		if got := s.hash(out, seed); got != key {
			return nil, &ChecksumError{Want: key, Got: got}
		}
	}

	s.markKnown(key)
	if s.cache != nil {
		s.cache.Set(ctx, ck, bytes.Clone(out))
	}
	return out, nil
}

// HasChunk reports whether the chunk addressed by key exists.
func (s *Store) HasChunk(ctx context.Context, key Key) (bool, error) {
	ok, err := s.exists(ctx, chunkName(key))
	if ok {
		s.markKnown(key)
	}
	return ok, err
}

// Put splits r into chunks, stores them and writes a manifest for the
// object. Chunks are hashed and written concurrently.
func (s *Store) Put(ctx context.Context, r io.Reader) (*Manifest, error) {
	chunkSize := s.opts.chunkSize
	charge := int64(chunkSize)

	g, gctx := errgroup.WithContext(ctx)

	var (
		mu           sync.Mutex
		keys         = map[int]Key{}
		chunks       = []ChunkRef{}
		offset       int64
		deduplicated atomic.Int64
		readErr      error
	)

	for {
		if err := gctx.Err(); err != nil {
			readErr = err
			break
		}
		if err := s.rc.AcquireMemory(gctx, charge); err != nil {
			readErr = err
			break
		}

		buf := make([]byte, chunkSize)
		n, err := io.ReadFull(r, buf)
		if n == 0 {
			s.rc.ReleaseMemory(charge)
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			s.rc.ReleaseMemory(charge)
			readErr = err
			break
		}

		if err := s.rc.AcquireWorker(gctx); err != nil {
			s.rc.ReleaseMemory(charge)
			readErr = err
			break
		}

		idx := len(chunks)
		chunks = append(chunks, ChunkRef{Offset: offset, Size: n})
		offset += int64(n)

		data := buf[:n]
		g.Go(func() error {
			defer s.rc.ReleaseMemory(charge)
			defer s.rc.ReleaseWorker()

			key, stored, err := s.putChunk(gctx, data)
			if err != nil {
				return err
			}
			if !stored {
				deduplicated.Add(1)
			}

			mu.Lock()
			keys[idx] = key
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}

	for i := range chunks {
		chunks[i].Key = keys[i]
	}

	m := &Manifest{
		Version:     ManifestVersion,
		Key:         manifestKey(chunks, s.opts.seed),
		Size:        offset,
		Seed:        s.opts.seed,
		ChunkSize:   chunkSize,
		Compression: s.opts.compression.String(),
		Chunks:      chunks,
	}

	data, err := encodeManifest(m)
	if err != nil {
		return nil, err
	}
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	if err := s.backend.Put(ctx, manifestName(m.Key), data); err != nil {
		return nil, fmt.Errorf("dedup: write manifest %s: %w", m.Key, err)
	}

	s.opts.logger.LogManifest(ctx, m.Key.String(), len(chunks), int(deduplicated.Load()), m.Size)
	return m, nil
}

// Manifest loads the manifest of the object addressed by key.
func (s *Store) Manifest(ctx context.Context, key Key) (*Manifest, error) {
	data, err := s.backend.Get(ctx, manifestName(key))
	if err != nil {
		return nil, translateError(err)
	}
	return decodeManifest(data, key)
}

// Get writes the object addressed by key to w.
//
// Chunks are fetched in windows of the configured concurrency and written
// in order. Backends implementing blobstore.Prefetcher are asked to warm
// each window before it is read.
func (s *Store) Get(ctx context.Context, key Key, w io.Writer) error {
	m, err := s.Manifest(ctx, key)
	if err != nil {
		return err
	}

	window := s.opts.concurrency
	for start := 0; start < len(m.Chunks); start += window {
		batch := m.Chunks[start:min(start+window, len(m.Chunks))]

		parts, err := s.fetchWindow(ctx, batch, m.Seed)
		if err != nil {
			return err
		}

		for i, data := range parts {
			if len(data) != batch[i].Size {
				return fmt.Errorf("%w: chunk %s is %d bytes, manifest says %d", ErrCorruptManifest, batch[i].Key, len(data), batch[i].Size)
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) fetchWindow(ctx context.Context, batch []ChunkRef, seed uint64) ([][]byte, error) {
	parts := make([][]byte, len(batch))

	if p, ok := s.backend.(blobstore.Prefetcher); ok {
		names := make([]string, len(batch))
		for i, c := range batch {
			names[i] = chunkName(c.Key)
		}
		if err := p.Prefetch(ctx, names...); err != nil {
			return nil, translateError(err)
		}

		for i, c := range batch {
			data, err := s.getChunk(ctx, c.Key, seed, c.Size)
			if err != nil {
				return nil, err
			}
			parts[i] = data
		}
		return parts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range batch {
		if err := s.rc.AcquireWorker(gctx); err != nil {
			// A failed fetch cancels gctx; report that failure instead.
			if werr := g.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}
		g.Go(func() error {
			defer s.rc.ReleaseWorker()

			data, err := s.getChunk(gctx, c.Key, seed, c.Size)
			if err != nil {
				return err
			}
			parts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// Has reports whether an object manifest exists under key.
func (s *Store) Has(ctx context.Context, key Key) (bool, error) {
	return s.exists(ctx, manifestName(key))
}

// Objects returns the keys of all stored manifests.
func (s *Store) Objects(ctx context.Context) ([]Key, error) {
	names, err := s.backend.List(ctx, "manifests/")
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(names))
	for _, name := range names {
		k, err := ParseKey(path.Base(name))
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Index lists the chunks already in the backend and adds them to the known
// set, so that later writes of the same content skip the upload. It returns
// the number of chunks found.
func (s *Store) Index(ctx context.Context) (int, error) {
	names, err := s.backend.List(ctx, "chunks/")
	if err != nil {
		return 0, err
	}

	n := 0
	for _, name := range names {
		k, err := ParseKey(path.Base(name))
		if err != nil {
			continue
		}
		s.markKnown(k)
		n++
	}
	return n, nil
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	st := Stats{
		ChunksWritten:      s.chunksWritten.Load(),
		ChunksDeduplicated: s.chunksDeduplicated.Load(),
		BytesIn:            s.bytesIn.Load(),
		BytesStored:        s.bytesStored.Load(),
		BytesRead:          s.bytesRead.Load(),
	}

	s.mu.Lock()
	st.KnownChunks = s.known.GetCardinality()
	s.mu.Unlock()

	if s.cache != nil {
		st.CacheHits, st.CacheMisses = s.cache.Stats()
	}
	return st
}

func (s *Store) hash(data []byte, seed uint64) Key {
	start := time.Now()
	k := KeyOf(data, seed)
	s.opts.metricsCollector.RecordHash(len(data), time.Since(start))
	return k
}

func (s *Store) exists(ctx context.Context, name string) (bool, error) {
	_, err := s.backend.Stat(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, blobstore.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Store) mayContain(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.known.Contains(k.view32())
}

func (s *Store) markKnown(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known.Add(k.view32())
}
