// Package cache stores BrandProfile snapshots keyed by normalized site
// URL, with TTL-based lazy expiry and per-key single-flight loading so
// concurrent requests for one storefront share a single fetch.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/logger"
	"github.com/jonesrussell/storescope/internal/metrics"
)

// LoadFunc produces a fresh BrandProfile for a normalized URL. Invoked
// at most once per key while a load is in flight.
type LoadFunc func(ctx context.Context, normalizedURL string) (*domain.BrandProfile, error)

// entry is a committed cache value.
type entry struct {
	profile   *domain.BrandProfile
	createdAt time.Time
}

// flight tracks one in-flight load. Waiters block on done and then read
// profile/err; both are written exactly once before done is closed.
type flight struct {
	done    chan struct{}
	profile *domain.BrandProfile
	err     error
}

// ProfileCache is the owned profile store. Entry creation and overwrite
// are atomic per key; unrelated URLs never contend on a fetch.
type ProfileCache struct {
	ttl     time.Duration
	load    LoadFunc
	log     logger.Interface
	metrics *metrics.Metrics

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]*flight
}

// New creates a profile cache around the given loader.
func New(ttl time.Duration, load LoadFunc, log logger.Interface, m *metrics.Metrics) *ProfileCache {
	return &ProfileCache{
		ttl:      ttl,
		load:     load,
		log:      log.WithComponent("cache"),
		metrics:  m,
		entries:  make(map[string]entry),
		inflight: make(map[string]*flight),
	}
}

// GetOrFetch returns the cached profile for the URL when fresh, otherwise
// loads it. Concurrent callers for the same normalized URL share one
// load and observe its single outcome; each caller's own context can
// still cancel its wait.
func (c *ProfileCache) GetOrFetch(ctx context.Context, rawURL string) (*domain.BrandProfile, error) {
	key, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	profile, fl, leader := c.lookup(key)
	if profile != nil {
		c.metrics.RecordCacheHit()
		return profile, nil
	}
	c.metrics.RecordCacheMiss()

	if leader {
		return c.runLoad(ctx, key, fl)
	}
	return c.awaitFlight(ctx, fl)
}

// Clear removes every committed entry. In-flight loads are unaffected.
func (c *ProfileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Invalidate drops the committed entry for a URL so the next access
// reloads it. Unknown or unparsable URLs are a no-op.
func (c *ProfileCache) Invalidate(rawURL string) {
	key, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of committed entries, including expired ones
// that have not been touched since expiry.
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// lookup checks for a fresh entry and otherwise joins or creates the
// in-flight load for the key. Expiry is lazy: checked here, on access.
func (c *ProfileCache) lookup(key string) (profile *domain.BrandProfile, fl *flight, leader bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.entries[key]; ok && time.Since(cached.createdAt) < c.ttl {
		return cached.profile, nil, false
	}

	if existing, ok := c.inflight[key]; ok {
		return nil, existing, false
	}

	created := &flight{done: make(chan struct{})}
	c.inflight[key] = created
	return nil, created, true
}

// runLoad executes the load as the flight leader and publishes the
// outcome to all waiters.
func (c *ProfileCache) runLoad(ctx context.Context, key string, fl *flight) (*domain.BrandProfile, error) {
	profile, err := c.load(ctx, key)

	c.mu.Lock()
	if err == nil {
		c.entries[key] = entry{profile: profile, createdAt: time.Now()}
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	fl.profile = profile
	fl.err = err
	close(fl.done)

	if err != nil {
		c.log.Warn("profile load failed", "url", key, "error", err.Error())
		return nil, err
	}
	return profile, nil
}

// awaitFlight blocks until the in-flight load completes or the caller's
// context is cancelled, whichever comes first.
func (c *ProfileCache) awaitFlight(ctx context.Context, fl *flight) (*domain.BrandProfile, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("awaiting in-flight fetch: %w", ctx.Err())
	case <-fl.done:
		if fl.err != nil {
			return nil, fl.err
		}
		return fl.profile, nil
	}
}
