// Package store keeps the task collection: an insertion-ordered mapping of
// tasks keyed by ID. Readers always get a consistent snapshot.
package store

import (
	"errors"
	"sync"

	"todocal/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Store is an in-memory task collection. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Task
}

// New returns an empty store.
func New() *Store {
	return &Store{byID: make(map[string]model.Task)}
}

// Upsert adds t, or replaces the task with the same ID in place. It
// reports whether a task was replaced.
func (s *Store) Upsert(t model.Task) (replaced bool, err error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[t.ID]; ok {
		s.byID[t.ID] = t
		return true, nil
	}
	s.order = append(s.order, t.ID)
	s.byID[t.ID] = t
	return false, nil
}

// Remove deletes the task with the given ID.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	order := make([]string, 0, len(s.order)-1)
	for _, o := range s.order {
		if o != id {
			order = append(order, o)
		}
	}
	s.order = order
	return nil
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	return t, ok
}

// All returns every task in insertion order.
func (s *Store) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
