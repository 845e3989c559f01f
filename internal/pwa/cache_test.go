package pwa

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store mirroring the redis layout: one bucket of
// entries per version tag.
type memStore struct {
	mu       sync.Mutex
	versions map[string]map[string]Entry
}

func newMemStore() *memStore {
	return &memStore{versions: map[string]map[string]Entry{}}
}

func (s *memStore) Write(_ context.Context, version string, entries map[string]Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := make(map[string]Entry, len(entries))
	for p, e := range entries {
		bucket[p] = e
	}
	s.versions[version] = bucket
	return nil
}

func (s *memStore) Get(_ context.Context, version, path string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.versions[version]
	if !ok {
		return nil, ErrNotCached
	}
	e, ok := bucket[path]
	if !ok {
		return nil, ErrNotCached
	}
	return &e, nil
}

func (s *memStore) Versions(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.versions))
	for v := range s.versions {
		out = append(out, v)
	}
	return out, nil
}

func (s *memStore) Delete(_ context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.versions, version)
	return nil
}

// memOrigin serves canned resources and counts fetches.
type memOrigin struct {
	mu        sync.Mutex
	resources map[string]string
	failing   map[string]bool
	fetches   int
}

func newMemOrigin(resources map[string]string) *memOrigin {
	return &memOrigin{resources: resources, failing: map[string]bool{}}
}

func (o *memOrigin) Fetch(_ context.Context, path string) (*Entry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.fetches++
	if o.failing[path] {
		return nil, errors.New("origin down")
	}
	body, ok := o.resources[path]
	if !ok {
		return nil, errors.New("no such resource")
	}
	return &Entry{Body: []byte(body), ContentType: "text/html"}, nil
}

func (o *memOrigin) fetchCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fetches
}

var appShell = map[string]string{
	"/":           "<html>shell</html>",
	"/app.js":     "console.log('hi')",
	"/styles.css": "body{}",
}

func shellManifest() Manifest {
	return Manifest{"/", "/app.js", "/styles.css"}
}

func TestCache_ActivatePopulatesStore(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(appShell)
	cache := NewCache("v1", shellManifest(), store, origin)

	require.NoError(t, cache.Activate(context.Background()))

	for _, path := range shellManifest() {
		e, err := store.Get(context.Background(), "v1", path)
		require.NoError(t, err, path)
		assert.Equal(t, appShell[path], string(e.Body))
	}
}

func TestCache_ActivationIsAllOrNothing(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(appShell)
	origin.failing["/app.js"] = true
	cache := NewCache("v1", shellManifest(), store, origin)

	err := cache.Activate(context.Background())
	require.Error(t, err)

	var actErr *ActivationError
	require.ErrorAs(t, err, &actErr)
	assert.Equal(t, "/app.js", actErr.Path)

	// Nothing was written, not even resources fetched before the failure.
	_, err = store.Get(context.Background(), "v1", "/")
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestCache_NewVersionPurgesOld(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(appShell)

	v1 := NewCache("v1", shellManifest(), store, origin)
	require.NoError(t, v1.Activate(context.Background()))

	v2 := NewCache("v2", shellManifest(), store, origin)
	require.NoError(t, v2.Activate(context.Background()))

	versions, err := store.Versions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, versions)
}

func TestCache_ServeHitNeverTouchesOrigin(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(appShell)
	cache := NewCache("v1", shellManifest(), store, origin)

	require.NoError(t, cache.Activate(context.Background()))
	activationFetches := origin.fetchCount()

	e, err := cache.Serve(context.Background(), "/app.js")
	require.NoError(t, err)
	assert.Equal(t, appShell["/app.js"], string(e.Body))
	assert.Equal(t, activationFetches, origin.fetchCount())
}

func TestCache_ServeMissFallsBack(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(map[string]string{"/extra.js": "x()"})
	cache := NewCache("v1", Manifest{}, store, origin)

	e, err := cache.Serve(context.Background(), "/extra.js")
	require.NoError(t, err)
	assert.Equal(t, "x()", string(e.Body))
	assert.Equal(t, 1, origin.fetchCount())
}

func TestCache_ServeMissWithDeadOriginFails(t *testing.T) {
	store := newMemStore()
	origin := newMemOrigin(appShell)
	origin.failing["/app.js"] = true
	cache := NewCache("v1", shellManifest(), store, origin)

	_, err := cache.Serve(context.Background(), "/app.js")
	assert.Error(t, err)
}

func TestCache_ConcurrentActivationGated(t *testing.T) {
	store := newMemStore()
	blockOrigin := &blockingOrigin{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	cache := NewCache("v1", Manifest{"/"}, store, blockOrigin)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- cache.Activate(context.Background())
	}()

	<-started
	<-blockOrigin.entered

	err := cache.Activate(context.Background())
	assert.ErrorIs(t, err, ErrActivationInFlight)

	close(blockOrigin.release)
	require.NoError(t, <-done)
}

type blockingOrigin struct {
	enteredOnce sync.Once
	entered     chan struct{}
	release     chan struct{}
}

func (o *blockingOrigin) Fetch(_ context.Context, _ string) (*Entry, error) {
	o.enteredOnce.Do(func() {
		if o.entered != nil {
			close(o.entered)
		}
	})
	<-o.release
	return &Entry{Body: []byte("ok"), ContentType: "text/plain"}, nil
}
