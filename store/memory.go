package store

import (
	"errors"
	"sync"
)

var errClosed = errors.New("store is closed")

// Memory is an in-process Store. Nothing survives the process.
type Memory struct {
	data   map[string]string
	mu     sync.RWMutex
	closed bool
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, wrap("get", key, errClosed)
	}

	v, ok := m.data[key]

	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return wrap("set", key, errClosed)
	}

	m.data[key] = value

	return nil
}

func (m *Memory) RemoveMany(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return wrap("remove", "", errClosed)
	}

	for _, k := range keys {
		delete(m.data, k)
	}

	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}
