package main

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/blobstore"
	"github.com/hupe1980/meowhash/codec"
	"github.com/hupe1980/meowhash/dedup"
	"github.com/hupe1980/meowhash/internal/conv"
)

func addStoreFlags(cmd *cobra.Command, sf *storeFlags) {
	cmd.Flags().StringVar(&sf.location, "store", "", "Store location: directory, s3://bucket/prefix or minio://host/bucket/prefix")
	cmd.Flags().StringVar(&sf.compression, "compression", "zstd", "Chunk compression (none, lz4, zstd)")
	cmd.Flags().StringVar(&sf.chunkSize, "chunk-size", "1MiB", "Chunk size (multiple of 256 bytes)")
	cmd.Flags().Uint64Var(&sf.seed, "seed", 0, "Hash seed shared by every writer of the store")
	cmd.Flags().IntVar(&sf.concurrency, "concurrency", dedup.DefaultConcurrency, "Chunks processed in parallel")
	cmd.Flags().StringVar(&sf.rateLimit, "rate-limit", "0", "Backend write limit per second (0 = unlimited)")
	cmd.Flags().StringVar(&sf.cacheSize, "cache", "0", "Read cache size (0 = disabled)")
	cmd.Flags().BoolVar(&sf.verify, "verify", true, "Re-hash chunks on read")
	cmd.Flags().StringVar(&sf.region, "region", "", "Bucket region for s3:// and minio:// stores")
	cmd.Flags().BoolVar(&sf.insecure, "insecure", false, "Use plain HTTP for minio:// stores")
	cmd.Flags().StringVar(&sf.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file when done")
	_ = cmd.MarkFlagRequired("store")
}

// openStore opens the dedup store described by the flags.
func openStore(ctx context.Context, sf *storeFlags, logger *meowhash.Logger, metrics meowhash.MetricsCollector) (*dedup.Store, error) {
	compression, err := codec.ParseType(sf.compression)
	if err != nil {
		return nil, fmt.Errorf("invalid --compression: %w", err)
	}
	chunkSize, err := parseSize(sf.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("invalid --chunk-size: %w", err)
	}
	rate, err := parseSize(sf.rateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid --rate-limit: %w", err)
	}
	cacheSize, err := parseSize(sf.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("invalid --cache: %w", err)
	}

	backend, err := openBackend(ctx, sf.location, sf.region, sf.insecure)
	if err != nil {
		return nil, err
	}
	if cacheSize > 0 {
		backend = blobstore.NewLRUCachingStore(backend, cacheSize)
	}

	return dedup.New(backend,
		dedup.WithCompression(compression),
		dedup.WithChunkSize(int(min(chunkSize, math.MaxInt32))),
		dedup.WithSeed(sf.seed),
		dedup.WithConcurrency(sf.concurrency),
		dedup.WithRateLimit(rate),
		dedup.WithVerify(sf.verify),
		dedup.WithLogger(logger.WithStore(sf.location)),
		dedup.WithMetrics(metrics),
	)
}

// parseSize parses a human-readable byte size such as "4MiB" or "512k".
func parseSize(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return conv.Uint64ToInt64(n)
}
