// Package token holds the current access token. The store is the single
// owner of the persisted token string: writers replace it wholesale and
// every registered listener is notified of the change, so a sign-in in one
// component and a session display in another stay in sync without knowing
// about each other.
package token

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reservekit/reserve-client/internal/storage"
)

// Change is the payload delivered to subscribers on every mutation. An
// empty Token means the store was cleared.
type Change struct {
	Token string
}

// Cleared reports whether the change removed the token.
func (c Change) Cleared() bool {
	return c.Token == ""
}

// Listener receives token changes. Listeners run synchronously on the
// mutating call, in subscription order.
//
// A listener must not call Set or Clear; mutating from inside a
// notification would re-enter the listener chain.
type Listener func(Change)

// Store persists the access token and broadcasts changes.
type Store struct {
	storage storage.Storage

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore builds a token store over the given storage.
func NewStore(st storage.Storage) *Store {
	return &Store{
		storage:   st,
		listeners: map[int]Listener{},
	}
}

// Get reads the currently persisted token, reporting whether one is set.
func (s *Store) Get() (string, bool) {
	val, ok, err := s.storage.Get(storage.KeyAuth)
	if err != nil || val == "" {
		return "", false
	}
	return val, ok
}

// Set persists the token and notifies subscribers.
func (s *Store) Set(tok string) error {
	if tok == "" {
		return fmt.Errorf("token must not be empty")
	}
	if err := s.storage.Set(storage.KeyAuth, tok); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.publish(Change{Token: tok})
	return nil
}

// Clear removes the persisted token and notifies subscribers with an empty
// payload.
func (s *Store) Clear() error {
	if err := s.storage.Delete(storage.KeyAuth); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.publish(Change{})
	return nil
}

// Subscribe registers a listener invoked on every Set and Clear. The
// returned function removes the registration.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// publish snapshots the listener set under the lock and invokes outside it,
// so a listener may subscribe or unsubscribe without deadlocking.
func (s *Store) publish(change Change) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snapshot := make([]Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn(change)
	}
}
