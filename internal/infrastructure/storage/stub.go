package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	documentsapp "github.com/lawmatch/backend/internal/application/documents"
)

// Ensure StubObjectStorage implements the documents storage port
var _ documentsapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps payloads in memory. Used in development and in
// tests when no S3 endpoint is configured.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates an empty in-memory store
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		objects: make(map[string][]byte),
	}
}

// Upload reads the payload into memory
func (s *StubObjectStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("storage key is required")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// PresignDownload returns a fake URL carrying the key. The stub serves no
// traffic, so the URL only needs to be stable and distinct per key.
func (s *StubObjectStorage) PresignDownload(ctx context.Context, key, fileName string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("object not found: %s", key)
	}
	return "stub://download/" + key, nil
}

// Delete removes the payload from memory
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored payload. Test helper.
func (s *StubObjectStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored objects. Test helper.
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
