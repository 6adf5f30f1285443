package layout

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cache caches per-line display-width indices with LRU eviction.
//
// Validity is tracked by the owning line's generation counter: an entry
// stores the generation it was computed for and is recomputed when the
// line's current generation differs. Editing one line therefore never
// invalidates a neighbor's entry.
type Cache struct {
	mu        sync.RWMutex
	entries   map[int]*cacheEntry
	tabStop   int
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	index      *LineIndex
	gen        uint64
	lastAccess time.Time
}

// NewCache creates a cache for indices built with the given tab stop.
// maxSize caps the number of cached lines (0 = unlimited).
func NewCache(tabStop, maxSize int) *Cache {
	if tabStop < 1 {
		tabStop = 1
	}
	if maxSize < 0 {
		maxSize = 0
	}
	return &Cache{
		entries: make(map[int]*cacheEntry),
		tabStop: tabStop,
		maxSize: maxSize,
	}
}

// TabStop returns the tab stop indices are built with.
func (c *Cache) TabStop() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tabStop
}

// SetTabStop changes the tab stop and drops every entry; all widths
// depend on it.
func (c *Cache) SetTabStop(tabStop int) {
	if tabStop < 1 {
		tabStop = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if tabStop == c.tabStop {
		return
	}
	c.tabStop = tabStop
	c.entries = make(map[int]*cacheEntry)
}

// Get returns the index for a line, computing it lazily when the cached
// entry is missing or was built for an older generation of the line.
func (c *Cache) Get(line int, text string, gen uint64) *LineIndex {
	c.mu.RLock()
	entry, ok := c.entries[line]
	if ok && entry.gen == gen {
		c.mu.RUnlock()
		c.mu.Lock()
		if e, ok := c.entries[line]; ok && e.gen == gen {
			e.lastAccess = time.Now()
			index := e.index
			c.mu.Unlock()
			c.hits.Add(1)
			return index
		}
		c.mu.Unlock()
		// Entry changed between locks; fall through to a miss.
	} else {
		c.mu.RUnlock()
	}

	c.misses.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	index := BuildIndex(text, c.tabStop)
	c.entries[line] = &cacheEntry{
		index:      index,
		gen:        gen,
		lastAccess: time.Now(),
	}

	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}

	return index
}

// Invalidate drops the entry for a single line.
func (c *Cache) Invalidate(line int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, line)
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*cacheEntry)
}

// ShiftLines renumbers entries when lines are inserted or deleted.
// fromLine is the first affected line; delta is positive for insertion,
// negative for deletion. Entries shifted above the insertion point keep
// their indices; entries shifted below fromLine are dropped.
func (c *Cache) ShiftLines(fromLine, delta int) {
	if delta == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	moved := make(map[int]*cacheEntry)
	for line, entry := range c.entries {
		if line >= fromLine {
			delete(c.entries, line)
			if newLine := line + delta; newLine >= fromLine {
				moved[newLine] = entry
			}
		}
	}
	for line, entry := range moved {
		c.entries[line] = entry
	}
}

// evict removes least-recently-used entries until under maxSize.
// Caller holds the write lock.
func (c *Cache) evict() {
	type lineTime struct {
		line int
		time time.Time
	}

	all := make([]lineTime, 0, len(c.entries))
	for line, entry := range c.entries {
		all = append(all, lineTime{line, entry.lastAccess})
	}

	// Insertion sort; the cache is small enough.
	for i := 1; i < len(all); i++ {
		j := i
		for j > 0 && all[j].time.Before(all[j-1].time) {
			all[j], all[j-1] = all[j-1], all[j]
			j--
		}
	}

	toRemove := len(all) - c.maxSize
	for i := 0; i < toRemove; i++ {
		delete(c.entries, all[i].line)
	}
	if toRemove > 0 {
		c.evictions.Add(uint64(toRemove))
	}
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit/miss/eviction counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}
