package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Blob is an object held by MemoryStore.
type Blob struct {
	ContentType string
	Data        []byte
}

// MemoryStore keeps uploads in process. Its public URLs point at baseURL,
// where the HTTP layer serves them back through Open.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string]Blob
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		blobs:   make(map[string]Blob),
	}
}

func (s *MemoryStore) Upload(_ context.Context, objectPath, contentType string, body io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return fmt.Errorf("read upload %s: %w", objectPath, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[objectPath] = Blob{ContentType: contentType, Data: buf.Bytes()}
	return nil
}

func (s *MemoryStore) PublicURL(_ context.Context, objectPath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.blobs[objectPath]; !ok {
		return "", fmt.Errorf("object %s does not exist", objectPath)
	}
	return s.baseURL + "/" + escapeSegments(objectPath), nil
}

func (s *MemoryStore) Open(objectPath string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[objectPath]
	return b, ok
}

// Len is the number of stored objects, orphans included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
