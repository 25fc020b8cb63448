package onboarding

import "sync"

// Store keeps one in-progress wizard per user in memory.
type Store struct {
	mu      sync.Mutex
	wizards map[int64]*Wizard
	create  func(userID int64) *Wizard
}

func NewStore() *Store {
	return &Store{
		wizards: make(map[int64]*Wizard),
		create:  NewWizard,
	}
}

// Start returns the user's wizard, creating one if none is in progress. The
// boolean reports whether a new wizard was created.
func (s *Store) Start(userID int64) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wizard, ok := s.wizards[userID]; ok {
		return wizard, false
	}
	wizard := s.create(userID)
	s.wizards[userID] = wizard
	return wizard, true
}

func (s *Store) Get(userID int64) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wizard, ok := s.wizards[userID]
	return wizard, ok
}

// Discard closes and forgets the user's wizard.
func (s *Store) Discard(userID int64) {
	s.mu.Lock()
	wizard, ok := s.wizards[userID]
	delete(s.wizards, userID)
	s.mu.Unlock()

	if ok {
		wizard.Close()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wizards)
}
