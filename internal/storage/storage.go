// Package storage selects the document archive backend.
package storage

import (
	"context"
	"fmt"
	"strings"

	"lexbrief/internal/config"
	"lexbrief/internal/port"
	"lexbrief/internal/storage/memory"
	"lexbrief/internal/storage/minio"
	"lexbrief/internal/storage/s3"
)

// Provider names accepted by storage.provider.
const (
	ProviderMemory = "memory"
	ProviderS3     = "s3"
	ProviderMinio  = "minio"
	ProviderNone   = "none"
)

// New builds the configured archive. ProviderNone returns a nil storage and a
// nil error; callers treat that as "archive disabled".
func New(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderMemory:
		return memory.NewStorage(), nil
	case ProviderS3:
		return s3.NewS3Client(cfg)
	case ProviderMinio:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("storage: minio provider requires an endpoint")
		}
		return minio.NewMinioClient(ctx, cfg)
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Provider)
	}
}
