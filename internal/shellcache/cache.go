// Package shellcache stores application shell resources for offline
// delivery. Entries live under a named cache generation; superseded
// generations are swept wholesale on activation.
package shellcache

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/logging"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// Entry is one cached response. Entries are replaced in place; there
// is no per-entry expiry.
type Entry struct {
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"stored_at"`
}

// Cache is a generation-named response cache backed by the database.
type Cache struct {
	db         *storage.DB
	generation string
}

// New creates a cache bound to the given generation name.
func New(db *storage.DB, generation string) *Cache {
	return &Cache{db: db, generation: generation}
}

// Generation returns the active generation name.
func (c *Cache) Generation() string {
	return c.generation
}

// entryKey builds the storage key for a request identity.
func (c *Cache) entryKey(method, url string) string {
	return fmt.Sprintf("%s:%s:%s %s", model.PrefixCache, c.generation, method, url)
}

// Match returns the cached entry for the request identity, or
// ErrCacheMiss when none is stored.
func (c *Cache) Match(method, url string) (*Entry, error) {
	data, err := c.db.GetBytes(c.entryKey(method, url))
	if err != nil {
		if storage.IsErrKeyNotFound(err) {
			return nil, errors.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &entry, nil
}

// Put stores or replaces the entry for the request identity.
func (c *Cache) Put(entry *Entry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.db.SetBytes(c.entryKey(entry.Method, entry.URL), data); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	logging.DebugLog("cached response",
		logging.KeyCacheKey, entry.Method+" "+entry.URL,
		logging.KeyStatus, entry.Status,
		"generation", c.generation)
	return nil
}

// Delete removes the entry for the request identity.
func (c *Cache) Delete(method, url string) error {
	return c.db.Delete(c.entryKey(method, url))
}

// Generations lists the distinct generation names currently stored.
func (c *Cache) Generations() ([]string, error) {
	keys, err := c.db.ListByPrefix(model.PrefixCache + ":")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, key := range keys {
		rest := strings.TrimPrefix(key, model.PrefixCache+":")
		idx := strings.Index(rest, ":")
		if idx < 0 {
			continue
		}
		name := rest[:idx]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// Activate deletes every entry stored under a generation other than
// the active one. This sweep is the cache's only eviction mechanism.
func (c *Cache) Activate() error {
	names, err := c.Generations()
	if err != nil {
		return fmt.Errorf("failed to list cache generations: %w", err)
	}

	for _, name := range names {
		if name == c.generation {
			continue
		}
		prefix := fmt.Sprintf("%s:%s:", model.PrefixCache, name)
		deleted, err := c.db.DeleteByPrefix(prefix)
		if err != nil {
			return fmt.Errorf("failed to sweep cache generation %q: %w", name, err)
		}
		logging.Info("swept stale cache generation", "generation", name, logging.KeyCount, deleted)
	}
	return nil
}

// Count returns the number of entries in the active generation.
func (c *Cache) Count() (int, error) {
	keys, err := c.db.ListByPrefix(fmt.Sprintf("%s:%s:", model.PrefixCache, c.generation))
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
