package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every arrangement lookup misses and every
// write is dropped. It remembers why caching is off so the CLI can say so.
type NullCache struct {
	reason string
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return NewDisabledCache("disabled")
}

// NewDisabledCache returns a NullCache that reports reason from Reason.
func NewDisabledCache(reason string) *NullCache {
	return &NullCache{reason: reason}
}

// Reason describes why caching is off.
func (c *NullCache) Reason() string { return c.reason }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (c *NullCache) Delete(context.Context, string) error                     { return nil }
func (c *NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
