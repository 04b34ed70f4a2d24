package state

import "sync"

// Store is the single mutable holder of the Blog value. Get hands out
// a deep copy so callers can never alias the held value; Update swaps
// the value atomically.
type Store struct {
	mu      sync.Mutex
	current Blog
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get() Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Store) Set(b Blog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = b
}

// Update applies fn to the current value under the lock.
func (s *Store) Update(fn func(Blog) Blog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = fn(s.current)
}
