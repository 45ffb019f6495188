package cache

import "sync"

// RouteKey identifies a computed answer. Epoch changes whenever road data
// changes, so answers computed against old data are never returned.
type RouteKey struct {
	Scenario string
	Op       string
	From, To string
	Epoch    uint64
}

// RouteCache stores computed responses of any type, typically the JSON
// model returned by the API.
type RouteCache struct {
	mu    sync.RWMutex
	epoch uint64
	m     map[RouteKey]any
	hits  uint64
}

func NewRouteCache() *RouteCache {
	return &RouteCache{m: make(map[RouteKey]any)}
}

func (c *RouteCache) Get(k RouteKey) (any, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return v, ok
}

func (c *RouteCache) Put(k RouteKey, v any) {
	c.mu.Lock()
	c.m[k] = v
	c.mu.Unlock()
}

func (c *RouteCache) Epoch() uint64 {
	c.mu.RLock()
	e := c.epoch
	c.mu.RUnlock()
	return e
}

// BumpEpoch invalidates every cached answer and releases their memory.
func (c *RouteCache) BumpEpoch() {
	c.mu.Lock()
	c.epoch++
	c.m = make(map[RouteKey]any)
	c.mu.Unlock()
}

func (c *RouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *RouteCache) Hits() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}
