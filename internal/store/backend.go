package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLoad marks a document that could not be read or decoded.
	ErrLoad = errors.New("load failed")
	// ErrSave marks a document that could not be encoded or written.
	ErrSave = errors.New("save failed")
)

// Backend persists the whole document. Implementations never do partial
// reads or writes.
type Backend interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// MemoryBackend keeps the encoded document in memory. Each Load decodes a
// fresh copy, so callers never share records across requests.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return Empty(), nil
	}
	return decodeState(b.data)
}

func (b *MemoryBackend) Save(ctx context.Context, s State) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.data = data
	b.mu.Unlock()
	return nil
}
