package pwa

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ======================================================
// Offline resource cache
// ======================================================

// Manifest is the fixed set of resource paths one cache version must hold
// to serve the app offline.
type Manifest []string

// Entry is one cached resource.
type Entry struct {
	Body        []byte
	ContentType string
}

// ErrNotCached is the store's miss sentinel.
var ErrNotCached = errors.New("pwa: resource not cached")

// Store persists cache generations, one named store per version tag.
type Store interface {
	// Write commits a complete generation and registers its version.
	Write(ctx context.Context, version string, entries map[string]Entry) error
	Get(ctx context.Context, version, path string) (*Entry, error)
	Versions(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, version string) error
}

// Origin fetches live resources when the cache has nothing to offer.
type Origin interface {
	Fetch(ctx context.Context, path string) (*Entry, error)
}

// ActivationError means one or more manifest resources could not be
// fetched; the activation pass wrote nothing.
type ActivationError struct {
	Path string
	Err  error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("pwa: cache activation failed at %s: %v", e.Path, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// ErrActivationInFlight gates concurrent activation passes.
var ErrActivationInFlight = errors.New("pwa: cache activation already running")

type Cache struct {
	version  string
	manifest Manifest
	store    Store
	origin   Origin

	mu         sync.Mutex
	activating bool
}

func NewCache(version string, manifest Manifest, store Store, origin Origin) *Cache {
	return &Cache{
		version:  version,
		manifest: manifest,
		store:    store,
		origin:   origin,
	}
}

func (c *Cache) Version() string { return c.version }

// Activate populates the current version's store from the origin and purges
// every other generation. All-or-nothing: a single failed fetch aborts the
// pass before anything is written, so the previous generation stays
// authoritative. Only one pass runs at a time.
func (c *Cache) Activate(ctx context.Context) error {
	c.mu.Lock()
	if c.activating {
		c.mu.Unlock()
		return ErrActivationInFlight
	}
	c.activating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.activating = false
		c.mu.Unlock()
	}()

	entries := make(map[string]Entry, len(c.manifest))
	for _, path := range c.manifest {
		e, err := c.origin.Fetch(ctx, path)
		if err != nil {
			return &ActivationError{Path: path, Err: err}
		}
		entries[path] = *e
	}

	if err := c.store.Write(ctx, c.version, entries); err != nil {
		return err
	}

	versions, err := c.store.Versions(ctx)
	if err != nil {
		return err
	}

	for _, v := range versions {
		if v == c.version {
			continue
		}
		if err := c.store.Delete(ctx, v); err != nil {
			return err
		}
		log.Printf("pwa: purged stale cache %s", v)
	}

	return nil
}

// Serve answers a resource request cache-first. A cached entry never touches
// the origin; a miss falls back to a live fetch, and a failed live fetch is
// surfaced to the caller, not swallowed.
func (c *Cache) Serve(ctx context.Context, path string) (*Entry, error) {
	e, err := c.store.Get(ctx, c.version, path)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, ErrNotCached) {
		return nil, err
	}

	e, err = c.origin.Fetch(ctx, path)
	if err != nil {
		log.Printf("pwa: fetch failed for %s: %v", path, err)
		return nil, err
	}
	return e, nil
}
