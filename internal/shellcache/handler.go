package shellcache

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
)

// Handler proxies shell requests to the origin, applying network-first
// delivery for navigations and stale-while-revalidate for
// sub-resources. Non-read methods pass through untouched.
type Handler struct {
	cache  *Cache
	origin string
	client *http.Client
}

// NewHandler creates a caching proxy in front of the given origin.
func NewHandler(cache *Cache, origin string) *Handler {
	return &Handler{
		cache:  cache,
		origin: strings.TrimRight(origin, "/"),
		client: &http.Client{Timeout: config.Global.HTTP.Timeout},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.passThrough(w, r)
		return
	}

	if isNavigation(r) {
		h.networkFirst(w, r)
		return
	}

	h.staleWhileRevalidate(w, r)
}

// isNavigation reports whether the request loads the application
// document itself rather than a sub-resource.
func isNavigation(r *http.Request) bool {
	if r.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// networkFirst fetches live and falls back to the cached copy only on
// network failure. A fresh response always replaces the cached copy.
func (h *Handler) networkFirst(w http.ResponseWriter, r *http.Request) {
	entry, err := h.fetch(r.Context(), r)
	if err == nil {
		if putErr := h.cache.Put(entry); putErr != nil {
			logging.Warn("failed to cache navigation response",
				logging.KeyURL, entry.URL, logging.KeyError, putErr)
		}
		writeEntry(w, entry)
		return
	}

	cached, cacheErr := h.cache.Match(r.Method, h.targetURL(r))
	if cacheErr != nil {
		logging.Warn("navigation failed with no cached copy",
			logging.KeyURL, h.targetURL(r), logging.KeyError, err)
		http.Error(w, "offline and no cached copy", http.StatusBadGateway)
		return
	}

	logging.Info("serving cached navigation",
		logging.KeyURL, cached.URL, "stored_at", cached.StoredAt)
	writeEntry(w, cached)
}

// staleWhileRevalidate serves the cached copy immediately and
// refreshes it in the background. With no cached copy the caller
// waits on the network.
func (h *Handler) staleWhileRevalidate(w http.ResponseWriter, r *http.Request) {
	cached, err := h.cache.Match(r.Method, h.targetURL(r))
	if err == nil {
		refresh := cloneForRefresh(r)
		go h.refresh(refresh)
		writeEntry(w, cached)
		return
	}
	if !errors.Is(err, errors.ErrCacheMiss) {
		logging.Warn("cache lookup failed",
			logging.KeyURL, h.targetURL(r), logging.KeyError, err)
	}

	entry, fetchErr := h.fetch(r.Context(), r)
	if fetchErr != nil {
		http.Error(w, "offline and no cached copy", http.StatusBadGateway)
		return
	}

	if entry.Status == http.StatusOK {
		if putErr := h.cache.Put(entry); putErr != nil {
			logging.Warn("failed to cache response",
				logging.KeyURL, entry.URL, logging.KeyError, putErr)
		}
	}
	writeEntry(w, entry)
}

// refresh re-fetches a resource and replaces its cache entry. Network
// failures are swallowed; the stale value already served stands.
func (h *Handler) refresh(r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Global.HTTP.Timeout)
	defer cancel()

	entry, err := h.fetch(ctx, r)
	if err != nil {
		logging.DebugLog("background refresh failed",
			logging.KeyURL, h.targetURL(r), logging.KeyError, err)
		return
	}
	if entry.Status != http.StatusOK {
		return
	}

	if err := h.cache.Put(entry); err != nil {
		logging.Warn("failed to store refreshed response",
			logging.KeyURL, entry.URL, logging.KeyError, err)
	}
}

// passThrough forwards the request to the origin without touching the
// cache.
func (h *Handler) passThrough(w http.ResponseWriter, r *http.Request) {
	entry, err := h.fetch(r.Context(), r)
	if err != nil {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	writeEntry(w, entry)
}

func (h *Handler) targetURL(r *http.Request) string {
	return h.origin + r.URL.RequestURI()
}

// fetch performs the origin request and captures the full response.
func (h *Handler) fetch(ctx context.Context, r *http.Request) (*Entry, error) {
	var body io.Reader
	if r.Body != nil {
		body = r.Body
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, h.targetURL(r), body)
	if err != nil {
		return nil, err
	}
	for key, values := range r.Header {
		req.Header[key] = values
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Method: r.Method,
		URL:    h.targetURL(r),
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   respBody,
	}, nil
}

// cloneForRefresh copies what the background refresh needs from the
// request before the handler returns.
func cloneForRefresh(r *http.Request) *http.Request {
	clone := r.Clone(context.Background())
	clone.Body = nil
	return clone
}

func writeEntry(w http.ResponseWriter, entry *Entry) {
	for key, values := range entry.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(entry.Status)
	w.Write(entry.Body)
}
