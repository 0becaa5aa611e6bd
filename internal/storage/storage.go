// Package storage archives rendered invoice documents on the local disk or
// an S3-compatible bucket.
package storage

import (
	"context"
	"io"

	"github.com/dukerupert/tabletab/internal"
)

// Storage defines the interface for document storage operations.
type Storage interface {
	// Put stores content under key and returns its URL or path.
	// Keys look like "invoices/INV-20250305-000001.txt".
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get returns ENOTFOUND when key does not exist. The caller closes the
	// reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(ctx context.Context, cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Endpoint:    cfg.S3Endpoint,
			Region:      cfg.S3Region,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretKey,
			BucketName:  cfg.S3BucketName,
			PublicURL:   cfg.S3PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
