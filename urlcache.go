package filterengine

// DefaultCacheSize is the default capacity of a matcher's URL cache.
const DefaultCacheSize = 1000

// urlCacheEntry is a parsed hostname memoized per URL string.
type urlCacheEntry struct {
	hostname      string
	lowerHostname string
}

// urlCache is a capacity-bounded memo of URL string to parsed hostname.
// When full, it evicts the single oldest-inserted entry; lookups do not
// refresh an entry's position.  It is not safe for concurrent use; every
// Matcher owns its own cache.
type urlCache struct {
	entries map[string]urlCacheEntry
	order   []string

	maxSize int

	hits   uint64
	misses uint64
}

// newURLCache creates a cache holding at most maxSize entries.
func newURLCache(maxSize int) (c *urlCache) {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	return &urlCache{
		entries: make(map[string]urlCacheEntry, maxSize),
		maxSize: maxSize,
	}
}

// get returns the cached entry for url, if any, and counts the hit or
// miss.
func (c *urlCache) get(url string) (e urlCacheEntry, ok bool) {
	e, ok = c.entries[url]
	if ok {
		c.hits++
	} else {
		c.misses++
	}

	return e, ok
}

// set stores the entry for url, evicting the oldest-inserted entry when
// the cache is full.
func (c *urlCache) set(url string, e urlCacheEntry) {
	if _, ok := c.entries[url]; ok {
		c.entries[url] = e

		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[url] = e
	c.order = append(c.order, url)
}

// stats returns a snapshot of the cache counters.
func (c *urlCache) stats() (st CacheStats) {
	st = CacheStats{
		Hits:    c.hits,
		Misses:  c.misses,
		Size:    len(c.entries),
		MaxSize: c.maxSize,
	}

	if total := c.hits + c.misses; total > 0 {
		st.HitRate = float64(c.hits) / float64(total)
	}

	return st
}
