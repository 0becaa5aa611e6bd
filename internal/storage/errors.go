package storage

import (
	"fmt"

	"github.com/dukerupert/tabletab/internal/domain"
)

const opStorage = "storage"

var (
	ErrCredentialsRequired = domain.Invalid(opStorage, "S3 credentials are required")
	ErrBucketRequired      = domain.Invalid(opStorage, "S3 bucket name is required")
	ErrInvalidKey          = domain.Invalid(opStorage, "storage key must be a relative path inside the archive")
)

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return domain.NotFound(opStorage, "file", key)
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return domain.Invalid(opStorage, fmt.Sprintf("unknown storage provider: %s", provider))
}
