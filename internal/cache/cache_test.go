package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atharv3903/ambroute/internal/cache"
	"github.com/atharv3903/ambroute/internal/scenario"
)

func entry(t *testing.T, s scenario.Scenario) cache.Entry {
	t.Helper()
	g, err := s.Build()
	require.NoError(t, err)
	return cache.Entry{Scenario: s, Graph: g}
}

func TestGraphCacheLRU(t *testing.T) {
	c := cache.NewGraphCacheWithCap(2)
	c.Put("example", entry(t, scenario.Example()))
	c.Put("marica", entry(t, scenario.Marica()))

	_, ok := c.Get("example") // example becomes most recent
	require.True(t, ok)

	c.Put("marica-dispatch", entry(t, scenario.MaricaDispatch()))
	require.Equal(t, 2, c.Len())

	_, ok = c.Get("marica")
	require.False(t, ok, "least recently used entry is evicted")

	e, ok := c.Get("example")
	require.True(t, ok)
	require.Equal(t, "example", e.Scenario.Name)
	require.Equal(t, 6, e.Graph.Len())

	require.Equal(t, cache.Stats{Gets: 3, Hits: 2, Puts: 3, Evictions: 1}, c.Stats())
}

func TestGraphCacheReplaceInvalidateClear(t *testing.T) {
	c := cache.NewGraphCacheWithCap(0) // falls back to default
	c.Put("example", entry(t, scenario.Example()))
	c.Put("example", entry(t, scenario.Example()))
	require.Equal(t, 1, c.Len())

	c.Invalidate("example")
	c.Invalidate("never-there")
	_, ok := c.Get("example")
	require.False(t, ok)
	require.Zero(t, c.Stats().Evictions)

	c.Put("example", entry(t, scenario.Example()))
	c.Clear()
	require.Zero(t, c.Len())
	require.Equal(t, cache.Stats{}, c.Stats())
}

func TestGraphCachePutIfCurrent(t *testing.T) {
	c := cache.NewGraphCache()
	e := entry(t, scenario.Example())

	gen := c.Generation()
	require.True(t, c.PutIfCurrent("example", e, gen))

	// a load that started before an invalidation must not be cached
	gen = c.Generation()
	c.Invalidate("example")
	require.False(t, c.PutIfCurrent("example", e, gen))
	_, ok := c.Get("example")
	require.False(t, ok)

	gen = c.Generation()
	c.Clear()
	require.False(t, c.PutIfCurrent("example", e, gen))
	require.Zero(t, c.Len())

	require.True(t, c.PutIfCurrent("example", e, c.Generation()))
	require.Equal(t, 1, c.Len())
}

func TestGraphCacheConcurrent(t *testing.T) {
	c := cache.NewGraphCacheWithCap(4)
	e := entry(t, scenario.Example())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				name := fmt.Sprintf("s%d", (i+j)%6)
				c.Put(name, e)
				c.Get(name)
			}
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, c.Len(), 4)
}

func TestRouteCacheEpoch(t *testing.T) {
	c := cache.NewRouteCache()
	k := cache.RouteKey{Scenario: "example", Op: "nearest", From: "A", To: "hospital", Epoch: c.Epoch()}

	_, ok := c.Get(k)
	require.False(t, ok)

	c.Put(k, "D")
	v, ok := c.Get(k)
	require.True(t, ok)
	require.Equal(t, "D", v)
	require.Equal(t, uint64(1), c.Hits())

	c.BumpEpoch()
	require.Equal(t, uint64(1), c.Epoch())
	require.Zero(t, c.Len())

	_, ok = c.Get(k)
	require.False(t, ok)
	k.Epoch = c.Epoch()
	_, ok = c.Get(k)
	require.False(t, ok)
}
