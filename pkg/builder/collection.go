package builder

import (
	"sort"
	"sync"
)

// orderedSet keeps entities sorted by their order attribute. Ties keep their
// current relative position, so re-sorting an already sorted set is a no-op.
type orderedSet[T Ordered] struct {
	mu    sync.RWMutex
	items []T
}

func (s *orderedSet[T]) add(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(item.EntityID()) >= 0 {
		return false
	}
	s.items = append(s.items, item)
	s.sortLocked()
	return true
}

// remove drops the entity by identity.
func (s *orderedSet[T]) remove(item T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, existing := range s.items {
		if any(existing) == any(item) {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return true
		}
	}
	return false
}

func (s *orderedSet[T]) lookup(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

// contains reports identity membership, not ID equality.
func (s *orderedSet[T]) contains(item T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.items {
		if any(existing) == any(item) {
			return true
		}
	}
	return false
}

func (s *orderedSet[T]) sort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortLocked()
}

func (s *orderedSet[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

func (s *orderedSet[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *orderedSet[T]) indexLocked(id string) int {
	for idx, existing := range s.items {
		if existing.EntityID() == id {
			return idx
		}
	}
	return -1
}

func (s *orderedSet[T]) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Order() < s.items[j].Order()
	})
}
