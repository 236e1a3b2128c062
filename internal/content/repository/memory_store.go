package repository

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
)

const autoIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MemoryStore is an in-process DocumentStore used for local runs and tests.
// Documents are listed in insertion order.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

func (s *MemoryStore) ListDocuments(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{ID: d.ID, Fields: copyFields(d.Fields)})
	}
	return out, nil
}

func (s *MemoryStore) InsertDocument(_ context.Context, collection string, fields map[string]any) (string, error) {
	id, err := newAutoID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], Document{ID: id, Fields: copyFields(fields)})
	return id, nil
}

func (s *MemoryStore) ReplaceDocument(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Fields = copyFields(fields)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *MemoryStore) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i := range docs {
		if docs[i].ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if list, ok := v.([]string); ok {
			v = append(make([]string, 0, len(list)), list...)
		}
		out[k] = v
	}
	return out
}

// newAutoID mimics Firestore's 20 character auto ids.
func newAutoID() (string, error) {
	b := make([]byte, 20)
	max := big.NewInt(int64(len(autoIDChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = autoIDChars[n.Int64()]
	}
	return string(b), nil
}
