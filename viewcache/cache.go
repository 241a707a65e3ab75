/*
Package viewcache caches rendered route data between mutations.

PURPOSE:
  Route-keyed cache for listing responses. Reads fill it, mutations
  call Revalidate(path) to drop everything cached under that route so
  the next read sees fresh rows.

KEYS:
  A key is the route path, optionally suffixed with query material via
  Key(path, params...). Revalidate removes the path key and every key
  under its prefix, so variants of one listing expire together.
*/
package viewcache

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is how long a cached view lives without a
// revalidation.
const DefaultExpiration = 5 * time.Minute

// cleanupInterval is how often expired entries are swept.
const cleanupInterval = 10 * time.Minute

// Cache is an in-memory view cache.
type Cache struct {
	c *gocache.Cache
}

// New creates an empty view cache.
func New() *Cache {
	return &Cache{c: gocache.New(DefaultExpiration, cleanupInterval)}
}

// Key builds a cache key from a route path and optional parameters.
func Key(path string, params ...any) string {
	parts := make([]string, len(params)+1)
	parts[0] = path
	for i, p := range params {
		parts[i+1] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, ":")
}

// Get retrieves a cached view.
func (vc *Cache) Get(key string) (any, bool) {
	return vc.c.Get(key)
}

// Put stores a view under key with the default expiration.
func (vc *Cache) Put(key string, value any) {
	vc.c.Set(key, value, gocache.DefaultExpiration)
}

// Revalidate drops the cached view for path and every key under its
// prefix.
func (vc *Cache) Revalidate(path string) {
	vc.c.Delete(path)

	prefix := path + ":"
	for key := range vc.c.Items() {
		if strings.HasPrefix(key, prefix) {
			vc.c.Delete(key)
		}
	}
}

// Flush removes everything. Intended for tests and dev resets.
func (vc *Cache) Flush() {
	vc.c.Flush()
}
