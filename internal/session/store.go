// Package session keeps per-visitor cart state in memory. Carts are never
// persisted to the store: they live from session creation until checkout
// clears them or the session expires.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTTL = 24 * time.Hour

type cart struct {
	laptopIDs []int64
	touchedAt time.Time
}

type Store struct {
	mu    sync.Mutex
	carts map[string]*cart
	ttl   time.Duration
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*cart),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// NewSession allocates a fresh session id. Expired carts are purged lazily
// here, so the map does not grow without bound between visits.
func (s *Store) NewSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, c := range s.carts {
		if now.Sub(c.touchedAt) > s.ttl {
			delete(s.carts, id)
		}
	}

	id := uuid.NewString()
	s.carts[id] = &cart{touchedAt: now}
	return id
}

// Has reports whether the session id is known (and not expired).
func (s *Store) Has(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return false
	}
	if s.now().Sub(c.touchedAt) > s.ttl {
		delete(s.carts, sessionID)
		return false
	}
	return true
}

// Get returns a copy of the cart's laptop ids in insertion order.
func (s *Store) Get(sessionID string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return []int64{}
	}
	c.touchedAt = s.now()

	ids := make([]int64, len(c.laptopIDs))
	copy(ids, c.laptopIDs)
	return ids
}

// Add appends a laptop id and reports whether it was actually added.
// An id already in the cart is a no-op.
func (s *Store) Add(sessionID string, laptopID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = &cart{}
		s.carts[sessionID] = c
	}
	c.touchedAt = s.now()

	for _, id := range c.laptopIDs {
		if id == laptopID {
			return false
		}
	}
	c.laptopIDs = append(c.laptopIDs, laptopID)
	return true
}

// Remove drops a laptop id from the cart and reports whether it was there.
func (s *Store) Remove(sessionID string, laptopID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return false
	}
	c.touchedAt = s.now()

	for i, id := range c.laptopIDs {
		if id == laptopID {
			c.laptopIDs = append(c.laptopIDs[:i], c.laptopIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart but keeps the session alive.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[sessionID]; ok {
		c.laptopIDs = nil
		c.touchedAt = s.now()
	}
}
