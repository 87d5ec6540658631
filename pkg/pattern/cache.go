package pattern

import (
	"strconv"

	gocache "github.com/patrickmn/go-cache"
)

// Cache memoizes compiled matchers by (source, options).
//
// Entries never expire. Identical keys always yield the identical *Regex,
// so language tables that share a sub-pattern share one compiled object.
// A Cache is safe for concurrent use; the lock is held only while looking up
// or inserting an entry, never while compiling or matching.
type Cache struct {
	entries *gocache.Cache
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		// A zero cleanup interval disables the janitor goroutine.
		entries: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetOrCompile returns the compiled matcher for source and opts, compiling it
// on first use. A malformed source returns an error wrapping ErrInvalidPattern.
func (c *Cache) GetOrCompile(source string, opts Options) (*Regex, error) {
	key := cacheKey(source, opts)

	if cached, ok := c.lookup(key); ok {
		return cached, nil
	}

	compiled, err := Compile(source, opts)
	if err != nil {
		return nil, err
	}

	// Add fails if another goroutine inserted the key first; that entry wins.
	if err := c.entries.Add(key, compiled, gocache.NoExpiration); err != nil {
		if cached, ok := c.lookup(key); ok {
			return cached, nil
		}
	}

	return compiled, nil
}

// MustGetOrCompile is like GetOrCompile but panics on a malformed pattern.
// Language tables are static data, so a bad entry is a programming error.
func (c *Cache) MustGetOrCompile(source string, opts Options) *Regex {
	compiled, err := c.GetOrCompile(source, opts)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Len returns the number of compiled entries.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}

func (c *Cache) lookup(key string) (*Regex, bool) {
	value, found := c.entries.Get(key)
	if !found {
		return nil, false
	}
	compiled, ok := value.(*Regex)
	return compiled, ok
}

func cacheKey(source string, opts Options) string {
	return strconv.Itoa(int(opts)) + "\x00" + source
}
