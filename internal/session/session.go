// Package session keeps the per-owner state of the add-person dialog.
package session

import "sync"

// Step is the position of an owner in the add-person dialog.
type Step int

const (
	// Idle means no dialog is in progress.
	Idle Step = iota
	// AwaitingName means the next text message is the person's name.
	AwaitingName
	// AwaitingDate means the name is known and the next text message is the birth date.
	AwaitingDate
)

func (s Step) String() string {
	switch s {
	case AwaitingName:
		return "awaiting_name"
	case AwaitingDate:
		return "awaiting_date"
	default:
		return "idle"
	}
}

// State is the dialog state of one owner. Name is only set in AwaitingDate.
type State struct {
	Step Step
	Name string
}

// Store holds dialog state keyed by owner id. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	states map[int64]State
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the owner's state, or the Idle state if there is none.
func (s *Store) Get(ownerID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[ownerID]
}

// StartAdd puts the owner at the name prompt, discarding any earlier progress.
func (s *Store) StartAdd(ownerID int64) {
	s.set(ownerID, State{Step: AwaitingName})
}

// SetName records the validated name and moves the owner to the date prompt.
func (s *Store) SetName(ownerID int64, name string) {
	s.set(ownerID, State{Step: AwaitingDate, Name: name})
}

// Clear ends the owner's dialog. It reports whether a dialog was in progress.
func (s *Store) Clear(ownerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.states[ownerID]
	delete(s.states, ownerID)
	return ok
}

func (s *Store) set(ownerID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[ownerID] = st
}
