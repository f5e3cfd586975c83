package s3

import (
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

// UploadConfig configures the S3 uploader.
type UploadConfig struct {
	// PartSize is the minimum part size for multipart uploads. Blobs smaller
	// than PartSize are written with a single PutObject.
	// Default: 8MB
	PartSize int64

	// Concurrency is the number of concurrent part uploads.
	// Default: 5
	Concurrency int

	// EnableChecksum sends a CRC32C with every upload.
	// Default: true
	EnableChecksum bool

	// LeavePartsOnError keeps uploaded parts when a multipart upload fails.
	// Default: false (abort on error)
	LeavePartsOnError bool
}

// DefaultUploadConfig returns the default upload settings.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:          8 * 1024 * 1024,
		Concurrency:       5,
		EnableChecksum:    true,
		LeavePartsOnError: false,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithUploadConfig replaces the default upload settings.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(s *Store) {
		if cfg.PartSize < manager.MinUploadPartSize {
			cfg.PartSize = manager.MinUploadPartSize
		}
		if cfg.Concurrency <= 0 {
			cfg.Concurrency = manager.DefaultUploadConcurrency
		}
		s.upload = cfg
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		u.LeavePartsOnError = cfg.LeavePartsOnError
	})
}
