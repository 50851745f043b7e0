package dashboard

import "sync"

// Store serializes every state change through Dispatch.
type Store struct {
	notifyMu sync.Mutex // keeps listeners seeing snapshots in dispatch order

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch reduces e into the state and notifies listeners. Listeners must not
// dispatch.
func (s *Store) Dispatch(e Event) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, e)
	snapshot := s.state.clone()
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// State returns a copy safe to read without holding the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
