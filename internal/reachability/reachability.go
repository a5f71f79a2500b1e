// Package reachability tracks which owners are currently believed to accept
// notifications from the bot.
//
// The set lives for the lifetime of the process. Owners are added whenever
// they interact with the bot and removed on the first failed delivery, so
// after a restart only owners who have written to the bot again are notified.
package reachability

import "sync"

// Set is a concurrency-safe set of owner identifiers.
// The zero value is not usable; create one with New.
type Set struct {
	mu     sync.RWMutex
	owners map[int64]struct{}
}

// New returns an empty set.
func New() *Set {
	return &Set{owners: make(map[int64]struct{})}
}

// Add marks the owner as reachable. It reports whether the owner was newly added.
func (s *Set) Add(ownerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[ownerID]; ok {
		return false
	}
	s.owners[ownerID] = struct{}{}
	return true
}

// Remove evicts the owner. It reports whether the owner was present.
func (s *Set) Remove(ownerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owners[ownerID]; !ok {
		return false
	}
	delete(s.owners, ownerID)
	return true
}

// Contains reports whether the owner is currently reachable.
func (s *Set) Contains(ownerID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.owners[ownerID]
	return ok
}

// Len returns the number of reachable owners.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.owners)
}
