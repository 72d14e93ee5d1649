// Package memstore provides an in-process token store for development and tests.
package memstore

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
)

// TokenStore is a bounded in-memory LRU of token slots.
// Concurrency: methods are safe for concurrent use.
type TokenStore struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List // front = most recently used
	items map[string]*list.Element
	now   func() time.Time
}

type entry struct {
	key  string
	slot domainauth.TokenSlot
}

// Config groups constructor options.
type Config struct {
	Capacity int
	Now      func() time.Time
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Capacity: 10000, Now: time.Now}
}

// NewTokenStore creates an in-memory token store.
func NewTokenStore(cfg Config) *TokenStore {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 10000
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &TokenStore{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element),
		now:   nowFn,
	}
}

// Save stores slot under key, replacing any previous value.
func (s *TokenStore) Save(_ context.Context, key string, slot domainauth.TokenSlot) error {
	if key == "" {
		return errors.New("token slot key cannot be empty")
	}
	if slot.Token == "" {
		return errors.New("token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		el.Value.(*entry).slot = slot
		s.ll.MoveToFront(el)
		return nil
	}

	s.items[key] = s.ll.PushFront(&entry{key: key, slot: slot})
	for s.ll.Len() > s.cap {
		s.remove(s.ll.Back())
	}
	return nil
}

// Get returns the live slot for key.
func (s *TokenStore) Get(_ context.Context, key string) (domainauth.TokenSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot not found")
	}
	ent := el.Value.(*entry)
	if ent.slot.Expired(s.now()) {
		s.remove(el)
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot expired")
	}
	s.ll.MoveToFront(el)
	return ent.slot, nil
}

// Delete removes the slot for key if present.
func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.remove(el)
	}
	return nil
}

// Len returns the number of stored slots, including expired ones not yet touched.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

// caller must hold s.mu.
func (s *TokenStore) remove(el *list.Element) {
	if el == nil {
		return
	}
	s.ll.Remove(el)
	delete(s.items, el.Value.(*entry).key)
}
