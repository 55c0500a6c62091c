package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/config"
	"lexbrief/internal/storage"
	"lexbrief/internal/storage/memory"
)

func TestNew_Memory(t *testing.T) {
	s, err := storage.New(context.Background(), &config.StorageConfig{Provider: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, s)
}

func TestNew_None(t *testing.T) {
	s, err := storage.New(context.Background(), &config.StorageConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNew_MinioWithoutEndpoint(t *testing.T) {
	_, err := storage.New(context.Background(), &config.StorageConfig{Provider: "minio"})
	assert.Error(t, err)
}

func TestNew_Unknown(t *testing.T) {
	_, err := storage.New(context.Background(), &config.StorageConfig{Provider: "gcs"})
	assert.Error(t, err)
}
