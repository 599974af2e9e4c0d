package cache

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/fedcompute-project/fedcompute/pkg/util/generic"
)

// BasicCache is an in-memory Cache implementation. A background ticker
// sweeps expired entries; reads never return an expired item even if the
// sweep has not caught up yet.
type BasicCache[T any] struct {
	items  generic.SyncMap[string, cacheItem[T]]
	closer chan struct{}
	clock  clock.Clock
}

type cacheItem[T any] struct {
	contents  T
	expiresAt int64
}

type Option func(c *config)

type config struct {
	clock            clock.Clock
	cleanupFrequency time.Duration
}

func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

func WithCleanupFrequency(frequency time.Duration) Option {
	return func(c *config) {
		c.cleanupFrequency = frequency
	}
}

func NewBasicCache[T any](options ...Option) *BasicCache[T] {
	cfg := &config{
		clock:            clock.New(),
		cleanupFrequency: time.Hour,
	}
	for _, opt := range options {
		opt(cfg)
	}

	c := &BasicCache[T]{
		closer: make(chan struct{}),
		clock:  cfg.clock,
	}

	go c.cleanup(cfg.cleanupFrequency)
	return c
}

func (c *BasicCache[T]) Get(key string) (T, bool) {
	result, exists := c.items.Get(key)
	if !exists {
		return *new(T), false
	}
	if result.expiresAt != 0 && result.expiresAt <= c.clock.Now().Unix() {
		c.items.Delete(key)
		return *new(T), false
	}

	return result.contents, true
}

// Set stores value until expiresAt (unix seconds, zero means no expiry).
func (c *BasicCache[T]) Set(key string, value T, expiresAt int64) {
	c.items.Put(key, cacheItem[T]{
		contents:  value,
		expiresAt: expiresAt,
	})
}

func (c *BasicCache[T]) Delete(key string) {
	c.items.Delete(key)
}

func (c *BasicCache[T]) DeleteMatching(match func(key string) bool) {
	c.items.Iter(func(key string, _ cacheItem[T]) bool {
		if match(key) {
			c.items.Delete(key)
		}
		return true
	})
}

func (c *BasicCache[T]) Close() {
	close(c.closer)
}

func (c *BasicCache[T]) cleanup(frequency time.Duration) {
	ticker := c.clock.Ticker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-c.closer:
			return
		case <-ticker.C:
			// Stop the ticker whilst we process evictions
			// otherwise we'll be constrained to finishing
			// evictions in <frequency
			ticker.Stop()
			c.evict()
			ticker.Reset(frequency)
		}
	}
}

func (c *BasicCache[T]) evict() {
	now := c.clock.Now().Unix()
	c.items.Iter(func(key string, item cacheItem[T]) bool {
		if item.expiresAt != 0 && item.expiresAt <= now {
			c.items.Delete(key)
		}
		return true
	})
}
