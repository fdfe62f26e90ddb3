package store

import (
	"context"
	"sync"
)

// Memory is an in-process [Store]. Safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	values map[Kind]string
}

// NewMemory describes the newmemory operation and its observable behavior.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[Kind]string, 2),
	}
}

// Get describes the get operation and its observable behavior.
func (m *Memory) Get(_ context.Context, kind Kind) (string, bool, error) {
	if !validKind(kind) {
		return "", false, ErrUnknownKind
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[kind]
	return value, ok, nil
}

// Set describes the set operation and its observable behavior.
func (m *Memory) Set(_ context.Context, kind Kind, value string) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}
	if value == "" {
		return ErrEmptyValue
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[kind] = value
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (m *Memory) Clear(_ context.Context, kind Kind) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, kind)
	return nil
}
