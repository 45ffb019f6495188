package cache

import (
	"container/list"
	"sync"

	"github.com/atharv3903/ambroute/internal/graph"
	"github.com/atharv3903/ambroute/internal/scenario"
)

// defaultGraphCapacity is the number of built scenarios kept in memory.
const defaultGraphCapacity = 64

// Entry is a scenario together with the graph built from it.
type Entry struct {
	Scenario scenario.Scenario
	Graph    *graph.Graph[string, int64]
}

type graphEntry struct {
	key string
	val Entry
}

// Stats is a snapshot of GraphCache counters.
type Stats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
}

// GraphCache is a bounded LRU of built scenario graphs keyed by scenario
// name. It's safe for concurrent use. Cached graphs are never mutated, so
// any number of searches may share one.
type GraphCache struct {
	mu       sync.Mutex
	m        map[string]*list.Element
	ll       *list.List
	capacity int
	stats    Stats
	// gen changes on every Invalidate and Clear.
	gen uint64
}

func NewGraphCache() *GraphCache {
	return NewGraphCacheWithCap(defaultGraphCapacity)
}

// NewGraphCacheWithCap returns a cache holding at most capacity graphs.
// Non-positive values fall back to the default.
func NewGraphCacheWithCap(capacity int) *GraphCache {
	if capacity <= 0 {
		capacity = defaultGraphCapacity
	}
	return &GraphCache{
		m:        make(map[string]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Get returns the entry for name and marks it most recently used.
func (c *GraphCache) Get(name string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Gets++
	if el, ok := c.m[name]; ok {
		c.stats.Hits++
		c.ll.MoveToFront(el)
		return el.Value.(graphEntry).val, true
	}
	return Entry{}, false
}

// Put stores e under name, evicting the least recently used entry when the
// cache is full.
func (c *GraphCache) Put(name string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(name, e)
}

func (c *GraphCache) putLocked(name string, e Entry) {
	c.stats.Puts++
	if el, ok := c.m[name]; ok {
		el.Value = graphEntry{key: name, val: e}
		c.ll.MoveToFront(el)
		return
	}

	c.m[name] = c.ll.PushFront(graphEntry{key: name, val: e})
	if c.ll.Len() > c.capacity {
		tail := c.ll.Back()
		delete(c.m, tail.Value.(graphEntry).key)
		c.ll.Remove(tail)
		c.stats.Evictions++
	}
}

// Generation returns a token to pass to PutIfCurrent. Take it before
// loading the data the entry is built from.
func (c *GraphCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// PutIfCurrent stores e only if nothing was invalidated since gen was taken,
// so a graph built from data read before an update cannot land in the cache
// after that update's Invalidate. It reports whether e was stored.
func (c *GraphCache) PutIfCurrent(name string, e Entry, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return false
	}
	c.putLocked(name, e)
	return true
}

// Invalidate drops name from the cache. Evictions only count LRU pressure.
func (c *GraphCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if el, ok := c.m[name]; ok {
		delete(c.m, name)
		c.ll.Remove(el)
	}
}

// Clear empties the cache and resets its counters.
func (c *GraphCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]*list.Element, c.capacity)
	c.ll.Init()
	c.stats = Stats{}
	c.gen++
}

func (c *GraphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *GraphCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
