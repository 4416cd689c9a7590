package cache

import (
	"time"

	"auction-live-api/internal/model"
)

// SessionStore holds open bid sessions until they are closed or expire.
type SessionStore interface {
	// Get returns a session. Returns ErrCacheMiss if missing or expired.
	Get(id string) (model.BidSession, error)

	// Put stores a session and restarts its TTL.
	Put(session model.BidSession)

	// Update applies fn to a stored session atomically and restarts its TTL.
	// If fn fails the stored session is unchanged.
	Update(id string, fn func(*model.BidSession) error) (model.BidSession, error)

	// Delete removes a session and reports whether it existed.
	Delete(id string) bool

	// Len returns the number of live sessions.
	Len() int

	// Now returns the store's current time.
	Now() time.Time
}

// Common cache errors
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
