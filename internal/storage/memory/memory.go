package memory

import (
	"context"
	"fmt"
	"sync"
)

// Backend is an in-memory implementation of storage.Storage, used in tests
// and local development. Object URLs use a fake memory:// scheme.
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	mimeTypes map[string]string
}

// New creates a new in-memory storage backend.
func New() *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		mimeTypes: make(map[string]string),
	}
}

// Upload stores data under objectKey, overwriting any previous object.
func (b *Backend) Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	b.objects[objectKey] = buf
	b.mimeTypes[objectKey] = contentType

	return fmt.Sprintf("memory://%s", objectKey), nil
}

// Object returns the stored bytes and MIME type for objectKey.
func (b *Backend) Object(objectKey string) ([]byte, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.objects[objectKey]
	if !ok {
		return nil, "", false
	}
	return data, b.mimeTypes[objectKey], true
}

// Len reports the number of stored objects.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
