package kvstore

import "sync"

// Session is one session's view of the backing store plus the lock that
// serialises its read-modify-write mutations
type Session struct {
	ID    string
	Store Store
	Lock  *sync.Mutex
}

// Sessions hands out scoped stores over one backing Store. The same id always
// gets the same lock.
type Sessions struct {
	base  Store
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessions(base Store) *Sessions {
	return &Sessions{base: base, locks: make(map[string]*sync.Mutex)}
}

func (s *Sessions) Open(id string) *Session {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	return &Session{ID: id, Store: NewScoped(s.base, id), Lock: lock}
}
