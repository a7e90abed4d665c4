package dataset

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-gota/gota/dataframe"

	"github.com/marioles/courserafars/internal/observability"
)

// CachedLoader wraps a Loader with an in-memory LRU cache. Keys include
// the file's size and mtime, so re-reads of an unchanged file are served
// from cache and a rewritten file is parsed again under a fresh key.
type CachedLoader struct {
	inner   Loader
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedLoader creates a cache decorator around a loader.
func NewCachedLoader(inner Loader, maxEntries int, metrics *observability.Metrics) *CachedLoader {
	return &CachedLoader{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedLoader) Load(path string) (dataframe.DataFrame, error) {
	key, ok := cacheKey(path)
	if !ok {
		// Unstat-able paths (usually missing files) go straight through so
		// the loader produces its own not-exist error.
		return c.inner.Load(path)
	}

	if df, hit := c.cache.get(key); hit {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return df, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	df, err := c.inner.Load(path)
	if err != nil {
		return df, err
	}
	c.cache.put(key, df)
	return df, nil
}

// cacheKey builds a staleness-aware key for path. Returns false when the
// file cannot be stat-ed.
func cacheKey(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()), true
}

// lruCache is a simple thread-safe LRU cache for loaded dataframes.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value dataframe.DataFrame
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (dataframe.DataFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return dataframe.DataFrame{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value dataframe.DataFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
