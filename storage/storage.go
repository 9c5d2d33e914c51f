package storage

import (
	"context"
	"errors"
	"sync"
)

// KV is the scoped key-value substrate the stores persist their snapshots into.
// Get reports ok=false for a key that was never written.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Blob is a read-only artifact such as a catalog document.
type Blob interface {
	Load(ctx context.Context) ([]byte, error)
}

// Memory is a simple in-memory KV for tests and ephemeral sessions.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

// NewMemoryWith returns a Memory pre-populated with data.
func NewMemoryWith(data map[string]string) *Memory {
	m := NewMemory()
	for k, v := range data {
		m.data[k] = v
	}
	return m
}

// NewMemoryWithError returns a Memory whose reads and writes all fail.
func NewMemoryWithError() *Memory {
	m := NewMemory()
	m.getErr = errors.New("storage unavailable")
	m.setErr = m.getErr
	return m
}

// FailWrites makes subsequent Set calls return err. A nil err restores normal writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.sets++
	return nil
}

// Sets reports how many writes have succeeded.
func (m *Memory) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// BytesBlob serves a fixed payload, optionally failing.
type BytesBlob struct {
	data []byte
	err  error
}

func NewBytesBlob(data []byte) *BytesBlob {
	return &BytesBlob{data: data}
}

func NewBytesBlobWithError() *BytesBlob {
	return &BytesBlob{err: errors.New("not found")}
}

func (b *BytesBlob) Load(ctx context.Context) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.data, nil
}
