package shellcache

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

func newTestCache(t *testing.T, generation string) (*Cache, *storage.DB) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, generation), db
}

// =============================================================================
// Cache Tests
// =============================================================================

func TestCacheMissReturnsSentinel(t *testing.T) {
	cache, _ := newTestCache(t, "v1")

	_, err := cache.Match(http.MethodGet, "http://shell/app.js")
	assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, "v1")

	entry := &Entry{
		Method: http.MethodGet,
		URL:    "http://shell/app.js",
		Status: 200,
		Header: http.Header{"Content-Type": []string{"application/javascript"}},
		Body:   []byte("console.log('hi')"),
	}
	require.NoError(t, cache.Put(entry))

	got, err := cache.Match(http.MethodGet, "http://shell/app.js")
	require.NoError(t, err)
	assert.Equal(t, entry.Body, got.Body)
	assert.Equal(t, 200, got.Status)
	assert.Equal(t, "application/javascript", got.Header.Get("Content-Type"))
	assert.False(t, got.StoredAt.IsZero())
}

func TestCachePutReplacesEntry(t *testing.T) {
	cache, _ := newTestCache(t, "v1")

	require.NoError(t, cache.Put(&Entry{
		Method: http.MethodGet, URL: "http://shell/style.css", Status: 200, Body: []byte("old"),
	}))
	require.NoError(t, cache.Put(&Entry{
		Method: http.MethodGet, URL: "http://shell/style.css", Status: 200, Body: []byte("new"),
	}))

	got, err := cache.Match(http.MethodGet, "http://shell/style.css")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got.Body)

	count, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestActivateSweepsOldGenerations(t *testing.T) {
	old, db := newTestCache(t, "v1")
	require.NoError(t, old.Put(&Entry{
		Method: http.MethodGet, URL: "http://shell/", Status: 200, Body: []byte("v1 shell"),
	}))

	current := New(db, "v2")
	require.NoError(t, current.Put(&Entry{
		Method: http.MethodGet, URL: "http://shell/", Status: 200, Body: []byte("v2 shell"),
	}))

	names, err := current.Generations()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2"}, names)

	require.NoError(t, current.Activate())

	// The old generation's entries are unreachable afterwards.
	_, err = old.Match(http.MethodGet, "http://shell/")
	assert.ErrorIs(t, err, apperrors.ErrCacheMiss)

	got, err := current.Match(http.MethodGet, "http://shell/")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2 shell"), got.Body)

	names, err = current.Generations()
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, names)
}

// =============================================================================
// Handler Tests
// =============================================================================

func newTestHandler(t *testing.T, origin http.Handler) (*Handler, *Cache, *httptest.Server) {
	t.Helper()

	cache, _ := newTestCache(t, "v1")
	server := httptest.NewServer(origin)
	t.Cleanup(server.Close)

	return NewHandler(cache, server.URL), cache, server
}

func navigationRequest(path string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Header.Set("Sec-Fetch-Mode", "navigate")
	r.Header.Set("Accept", "text/html")
	return r
}

func TestNavigationNetworkFirst(t *testing.T) {
	var hits atomic.Int32
	handler, cache, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, "live shell")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, navigationRequest("/"))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "live shell", rec.Body.String())
	assert.Equal(t, int32(1), hits.Load())

	// The live response was stored for offline fallback.
	count, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNavigationFallsBackToCacheWhenOffline(t *testing.T) {
	handler, _, server := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "cached shell")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, navigationRequest("/"))
	require.Equal(t, 200, rec.Code)

	server.Close()

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, navigationRequest("/"))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "cached shell", rec.Body.String())
}

func TestNavigationFailsWithoutNetworkOrCache(t *testing.T) {
	handler, _, server := newTestHandler(t, http.NotFoundHandler())
	server.Close()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, navigationRequest("/never-visited"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSubResourceServedFromCacheWhenOffline(t *testing.T) {
	handler, _, server := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		fmt.Fprint(w, "body{margin:0}")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	require.Equal(t, 200, rec.Code)

	server.Close()

	// Stored copy is returned unchanged with the network gone.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "body{margin:0}", rec.Body.String())
	assert.Equal(t, "text/css", rec.Header().Get("Content-Type"))
}

func TestSubResourceStaleThenRevalidate(t *testing.T) {
	var version atomic.Int32
	version.Store(1)
	handler, cache, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "version %d", version.Load())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, "version 1", rec.Body.String())

	version.Store(2)

	// The cached value is served immediately; the refresh lands in the
	// cache for the next request, not this one.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, "version 1", rec.Body.String())

	require.Eventually(t, func() bool {
		entry, err := cache.Match(http.MethodGet, handler.origin+"/app.js")
		return err == nil && string(entry.Body) == "version 2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubResourceErrorNotCached(t *testing.T) {
	handler, cache, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	count, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNonReadMethodsBypassCache(t *testing.T) {
	handler, cache, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("payload"))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	count, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
