package proxy

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	MinDefaultId = 1
	MaxDefaultId = 100

	DefaultCacheLifetimeSeconds = 3600
)

var (
	// ErrInvalidIdentifier is returned for identifiers below 1.
	ErrInvalidIdentifier = zerr.New("pokemon id must be a positive integer")

	// ErrInvalidCacheLifetime is returned for negative cache lifetimes.
	ErrInvalidCacheLifetime = zerr.New("cache lifetime must not be negative")
)

// Request carries the optional inputs of a fetch. Nil means "use the default".
type Request struct {
	Id                   *int32 `json:"id,omitempty"`
	CacheLifetimeSeconds *int32 `json:"cacheLifetimeSeconds,omitempty"`
}

// Result is the projection returned to callers.
type Result struct {
	Id   int32    `json:"id"`
	Name string   `json:"name"`
	Type []string `json:"type"`
}

// Params is a Request with every default applied.
type Params struct {
	Id                   int32
	CacheLifetimeSeconds int32
	// LifetimeSupplied is false when CacheLifetimeSeconds came from the default.
	LifetimeSupplied bool
}

func (p Params) CacheLifetime() time.Duration {
	return time.Duration(p.CacheLifetimeSeconds) * time.Second
}
