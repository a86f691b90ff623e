// Package cache holds the response stores the upstream client uses to honour
// the cache lifetime hint.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.trai.ch/zerr"
)

// ErrNotFound is returned by Store.Get on a miss.
var ErrNotFound = zerr.New("cache entry not found")

// Entry is a stored upstream response.
type Entry struct {
	Body      json.RawMessage `json:"body"`
	ETag      string          `json:"etag,omitempty"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Fresh reports whether the entry may be reused without asking the upstream.
func (e *Entry) Fresh(now time.Time, lifetime time.Duration) bool {
	return lifetime > 0 && now.Sub(e.FetchedAt) < lifetime
}

// Store is a key/value store of upstream responses.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, entry *Entry) error
	Close() error
}
