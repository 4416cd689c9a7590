package cache

import (
	"sync"
	"time"

	"auction-live-api/internal/model"

	"github.com/jonboulle/clockwork"
)

// sessionEntry represents a cached session with expiration.
type sessionEntry struct {
	session   model.BidSession
	expiresAt time.Time
}

// SessionCache is an in-memory SessionStore with per-entry TTL.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	clock   clockwork.Clock
	ttl     time.Duration

	sweepInterval time.Duration
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

// NewSessionCache creates a session cache. When sweepInterval is positive a
// background goroutine removes expired sessions until Close is called.
func NewSessionCache(clock clockwork.Clock, ttl, sweepInterval time.Duration) *SessionCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	c := &SessionCache{
		entries:       make(map[string]*sessionEntry),
		clock:         clock,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		stopCleanup:   make(chan struct{}),
	}

	if sweepInterval > 0 {
		go c.cleanup()
	}

	return c
}

// Get retrieves a session by ID.
func (c *SessionCache) Get(id string) (model.BidSession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[id]
	if !exists || c.isExpired(entry) {
		return model.BidSession{}, ErrCacheMiss
	}
	return entry.session, nil
}

// Put stores a session and restarts its TTL.
func (c *SessionCache) Put(session model.BidSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[session.ID] = &sessionEntry{
		session:   session,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Update applies fn to a copy of the stored session and keeps the result.
func (c *SessionCache) Update(id string, fn func(*model.BidSession) error) (model.BidSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[id]
	if !exists || c.isExpired(entry) {
		return model.BidSession{}, ErrCacheMiss
	}

	session := entry.session
	if err := fn(&session); err != nil {
		return model.BidSession{}, err
	}
	session.ID = id

	c.entries[id] = &sessionEntry{
		session:   session,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	return session, nil
}

// Delete removes a session.
func (c *SessionCache) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[id]
	delete(c.entries, id)
	return exists && !c.isExpired(entry)
}

// Len returns the number of sessions that have not expired.
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entry := range c.entries {
		if !c.isExpired(entry) {
			n++
		}
	}
	return n
}

// Now returns the cache clock's current time.
func (c *SessionCache) Now() time.Time {
	return c.clock.Now()
}

// Close stops the background cleanup goroutine.
func (c *SessionCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
	return nil
}

// isExpired must be called with the lock held.
func (c *SessionCache) isExpired(e *sessionEntry) bool {
	return !c.clock.Now().Before(e.expiresAt)
}

// cleanup periodically removes expired entries.
func (c *SessionCache) cleanup() {
	ticker := c.clock.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			c.removeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

// removeExpired removes all expired entries.
func (c *SessionCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, entry := range c.entries {
		if c.isExpired(entry) {
			delete(c.entries, id)
		}
	}
}
