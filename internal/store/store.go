// Package store persists the inclusion list.
package store

import (
	"sync"

	"scenelist/internal/config"
	"scenelist/internal/errors"
	"scenelist/pkg/types"
)

// Store is a persistence sink that can also load what it saved.
type Store interface {
	Load() ([]types.Item, error)
	Commit(list []types.Item) error
	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendYAML:
		return NewYAMLStore(cfg.StorePath()), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.StorePath())
	default:
		return nil, errors.NewConfigError("invalid store backend", cfg.Store.Backend, errors.InvalidConfig, nil)
	}
}

// Memory keeps the list in memory and records every commit.
type Memory struct {
	mu      sync.Mutex
	list    []types.Item
	commits int
	err     error
}

// NewMemory creates a memory store holding initial.
func NewMemory(initial ...types.Item) *Memory {
	return &Memory{list: append([]types.Item(nil), initial...)}
}

// Load returns the last committed list.
func (m *Memory) Load() ([]types.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Item(nil), m.list...), nil
}

// Commit replaces the stored list, or returns the injected failure.
func (m *Memory) Commit(list []types.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.list = append([]types.Item(nil), list...)
	m.commits++
	return nil
}

// Commits returns how many commits succeeded.
func (m *Memory) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// FailWith makes every following Commit return err; nil clears it.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Close() error {
	return nil
}
