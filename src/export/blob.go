package export

import (
	"fmt"
	"sync"
)

// Blob is an in-memory binary payload with its MIME type.
type Blob struct {
	Type string
	Data []byte
}

// BlobStore hands out revocable URLs referencing blobs, the way a browser
// does for object URLs. A URL resolves until it is revoked.
type BlobStore interface {
	CreateObjectURL(b Blob) (string, error)
	Open(url string) (Blob, bool)
	RevokeObjectURL(url string)
}

// MemoryBlobs is a BlobStore kept in process memory. Safe for concurrent use.
type MemoryBlobs struct {
	mu    sync.Mutex
	next  uint64
	blobs map[string]Blob
}

// NewMemoryBlobs returns an empty MemoryBlobs.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{blobs: map[string]Blob{}}
}

func (m *MemoryBlobs) CreateObjectURL(b Blob) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	url := fmt.Sprintf("blob:vegeta/%d", m.next)
	m.blobs[url] = b
	return url, nil
}

func (m *MemoryBlobs) Open(url string) (Blob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[url]
	return b, ok
}

func (m *MemoryBlobs) RevokeObjectURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, url)
}

// Len reports how many URLs are still live.
func (m *MemoryBlobs) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
