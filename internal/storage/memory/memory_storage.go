// Package memory is an in-process document archive for development and tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"lexbrief/internal/port"
)

// ErrObjectNotFound is returned by Download for unknown keys.
var ErrObjectNotFound = fmt.Errorf("object not found")

// Storage keeps objects in a map keyed by bucket and key.
type Storage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStorage creates an empty Storage.
func NewStorage() *Storage {
	return &Storage{objects: make(map[string][]byte)}
}

var _ port.ObjectStorage = (*Storage)(nil)

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (s *Storage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("memory upload read: %w", err)
	}
	s.mu.Lock()
	s.objects[objectKey(input.Bucket, input.Key)] = data
	s.mu.Unlock()
	return &port.UploadOutput{Location: "memory://" + objectKey(input.Bucket, input.Key)}, nil
}

func (s *Storage) Download(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.objects[objectKey(bucket, key)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Storage) Delete(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	delete(s.objects, objectKey(bucket, key))
	s.mu.Unlock()
	return nil
}

// Len reports how many objects are stored.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
