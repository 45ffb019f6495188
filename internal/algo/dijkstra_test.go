package algo_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/atharv3903/ambroute/internal/algo"
	"github.com/atharv3903/ambroute/internal/graph"
)

// exampleGraph is the six-node city used throughout the engine tests:
//
//	A–B:4  A–C:2  B–C:1  B–D:5  C–D:8  C–E:10  D–E:2  E–F:3
func exampleGraph(t *testing.T) *graph.Graph[string, int64] {
	t.Helper()
	g := graph.New[string, int64]()
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		g.AddNode(n)
	}
	edges := []struct {
		u, v string
		w    int64
	}{
		{"A", "B", 4}, {"A", "C", 2}, {"B", "C", 1}, {"B", "D", 5},
		{"C", "D", 8}, {"C", "E", 10}, {"D", "E", 2}, {"E", "F", 3},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e.u, e.v, e.w))
	}
	return g
}

// randomGraph builds a connected-ish graph with n nodes and extra random edges.
func randomGraph(t *testing.T, rng *rand.Rand, n, extra int) *graph.Graph[int, int64] {
	t.Helper()
	g := graph.New[int, int64]()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}
	for i := 1; i < n; i++ {
		require.NoError(t, g.AddEdge(rng.Intn(i), i, rng.Int63n(20)))
	}
	for i := 0; i < extra; i++ {
		require.NoError(t, g.AddEdge(rng.Intn(n), rng.Intn(n), rng.Int63n(20)))
	}
	return g
}

type DijkstraSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *DijkstraSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *DijkstraSuite) TestExampleDistances() {
	g := exampleGraph(s.T())

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "A")
	require.NoError(s.T(), err)
	require.Equal(s.T(), map[string]int64{
		"A": 0, "B": 3, "C": 2, "D": 8, "E": 10, "F": 13,
	}, tree.Dist)
	require.Equal(s.T(), 6, tree.Explored)

	_, hasPrev := tree.Prev["A"]
	require.False(s.T(), hasPrev, "origin has no predecessor")
	require.Equal(s.T(), "C", tree.Prev["B"])
	require.Equal(s.T(), "B", tree.Prev["D"])
}

func (s *DijkstraSuite) TestUnknownOrigin() {
	g := exampleGraph(s.T())
	_, err := algo.ShortestPathsFrom(s.ctx, g, "Z")
	require.ErrorIs(s.T(), err, graph.ErrUnknownNode)
}

func (s *DijkstraSuite) TestSingleNode() {
	g := graph.New[string, int64]()
	g.AddNode("solo")

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "solo")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(0), tree.Dist["solo"])
	require.Equal(s.T(), []string{"solo"}, algo.ReconstructPath(tree.Prev, "solo"))
}

func (s *DijkstraSuite) TestDisconnectedNodeStaysInfinite() {
	g := exampleGraph(s.T())
	g.AddNode("Z")

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "A")
	require.NoError(s.T(), err)
	require.Equal(s.T(), graph.Infinity[int64](), tree.Dist["Z"])
	require.False(s.T(), tree.Reachable("Z"))

	_, hasPrev := tree.Prev["Z"]
	require.False(s.T(), hasPrev)

	// reconstruction alone cannot tell an unreached node from the origin
	require.Equal(s.T(), []string{"Z"}, algo.ReconstructPath(tree.Prev, "Z"))

	_, err = tree.PathTo("Z")
	require.ErrorIs(s.T(), err, algo.ErrUnreachable)
}

func (s *DijkstraSuite) TestParallelEdgePrefersCheaper() {
	g := graph.New[string, int64]()
	g.AddNode("X")
	g.AddNode("Y")
	require.NoError(s.T(), g.AddEdge("X", "Y", 9))
	require.NoError(s.T(), g.AddEdge("X", "Y", 2))

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "X")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(2), tree.Dist["Y"])
}

func (s *DijkstraSuite) TestZeroWeightEdges() {
	g := graph.New[string, int64]()
	for _, n := range []string{"A", "B", "C"} {
		g.AddNode(n)
	}
	require.NoError(s.T(), g.AddEdge("A", "B", 0))
	require.NoError(s.T(), g.AddEdge("B", "C", 0))

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "C")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(0), tree.Dist["A"])
	require.Equal(s.T(), []string{"C", "B", "A"}, algo.ReconstructPath(tree.Prev, "A"))
}

func (s *DijkstraSuite) TestFloatWeights() {
	g := graph.New[string, float64]()
	for _, n := range []string{"A", "B", "C"} {
		g.AddNode(n)
	}
	require.NoError(s.T(), g.AddEdge("A", "B", 1.5))
	require.NoError(s.T(), g.AddEdge("B", "C", 0.25))
	require.NoError(s.T(), g.AddEdge("A", "C", 2))

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "A")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.75, tree.Dist["C"], 1e-9)
}

// Sums that would overflow the weight type leave the node at Infinity
// instead of wrapping around.
func (s *DijkstraSuite) TestSmallIntegerWeightsSaturate() {
	g := graph.New[string, uint8]()
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(n)
	}
	require.NoError(s.T(), g.AddEdge("A", "B", 200))
	require.NoError(s.T(), g.AddEdge("B", "C", 100))
	require.NoError(s.T(), g.AddEdge("A", "D", 100))
	require.NoError(s.T(), g.AddEdge("D", "C", 100))
	require.NoError(s.T(), g.AddEdge("B", "E", 100))

	tree, err := algo.ShortestPathsFrom(s.ctx, g, "A")
	require.NoError(s.T(), err)
	require.Equal(s.T(), uint8(200), tree.Dist["C"])
	require.Equal(s.T(), []string{"A", "D", "C"}, algo.ReconstructPath(tree.Prev, "C"))

	require.Equal(s.T(), graph.Infinity[uint8](), tree.Dist["E"])
	require.False(s.T(), tree.Reachable("E"))
}

func (s *DijkstraSuite) TestNearMaxInt64Weights() {
	const huge = math.MaxInt64 - 10

	g := graph.New[string, int64]()
	for _, n := range []string{"A", "B", "C"} {
		g.AddNode(n)
	}
	require.NoError(s.T(), g.AddEdge("A", "B", huge))
	require.NoError(s.T(), g.AddEdge("B", "C", huge))

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	tree, err := algo.ShortestPathsFrom(ctx, g, "A")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(huge), tree.Dist["B"])
	require.False(s.T(), tree.Reachable("C"))
	for n, d := range tree.Dist {
		require.GreaterOrEqual(s.T(), d, int64(0), n)
	}
}

func (s *DijkstraSuite) TestCancelledContext() {
	g := exampleGraph(s.T())
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := algo.ShortestPathsFrom(ctx, g, "A")
	require.ErrorIs(s.T(), err, context.Canceled)
}

// TestRelaxationProperties checks, on random graphs, that no edge can still
// improve a distance and that every reconstructed path is a real path whose
// cost matches the distance table.
func (s *DijkstraSuite) TestRelaxationProperties() {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		g := randomGraph(s.T(), rng, 40, 60)
		origin := rng.Intn(40)

		tree, err := algo.ShortestPathsFrom(s.ctx, g, origin)
		require.NoError(s.T(), err)
		require.Equal(s.T(), int64(0), tree.Dist[origin])

		for _, e := range g.Edges() {
			du, dv := tree.Dist[e.U], tree.Dist[e.V]
			require.GreaterOrEqual(s.T(), du, int64(0))
			require.LessOrEqual(s.T(), dv, du+e.Weight, "edge %d-%d", e.U, e.V)
			require.LessOrEqual(s.T(), du, dv+e.Weight, "edge %d-%d", e.U, e.V)
		}

		for _, n := range g.Nodes() {
			path, err := tree.PathTo(n)
			require.NoError(s.T(), err)
			require.Equal(s.T(), origin, path[0])
			require.Equal(s.T(), n, path[len(path)-1])

			cost, err := algo.PathCost(g, path)
			require.NoError(s.T(), err)
			require.Equal(s.T(), tree.Dist[n], cost)

			seen := make(map[int]bool, len(path))
			for _, p := range path {
				require.False(s.T(), seen[p], "path revisits %d", p)
				seen[p] = true
			}
		}
	}
}

func (s *DijkstraSuite) TestIdempotentAndSymmetric() {
	rng := rand.New(rand.NewSource(11))
	g := randomGraph(s.T(), rng, 30, 40)

	first, err := algo.ShortestPathsFrom(s.ctx, g, 0)
	require.NoError(s.T(), err)
	second, err := algo.ShortestPathsFrom(s.ctx, g, 0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), first.Dist, second.Dist)

	for _, n := range g.Nodes() {
		back, err := algo.ShortestPathsFrom(s.ctx, g, n)
		require.NoError(s.T(), err)
		require.Equal(s.T(), first.Dist[n], back.Dist[0], "d(0,%d) != d(%d,0)", n, n)
	}
}

func (s *DijkstraSuite) TestConcurrentSearches() {
	g := exampleGraph(s.T())
	want, err := algo.ShortestPathsFrom(s.ctx, g, "A")
	require.NoError(s.T(), err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := algo.ShortestPathsFrom(s.ctx, g, "A")
			if err != nil {
				errs <- err
				return
			}
			for k, v := range want.Dist {
				if got.Dist[k] != v {
					errs <- fmt.Errorf("distance to %s: got %d, want %d", k, got.Dist[k], v)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(s.T(), err)
	}
}

func TestDijkstraSuite(t *testing.T) {
	suite.Run(t, new(DijkstraSuite))
}

func TestPathCostNotAdjacent(t *testing.T) {
	g := exampleGraph(t)
	_, err := algo.PathCost(g, []string{"A", "F"})
	require.ErrorIs(t, err, algo.ErrNotAdjacent)

	cost, err := algo.PathCost(g, []string{"A"})
	require.NoError(t, err)
	require.Zero(t, cost)
}

func TestPathToUnknownNode(t *testing.T) {
	g := exampleGraph(t)
	tree, err := algo.ShortestPathsFrom(context.Background(), g, "A")
	require.NoError(t, err)

	_, err = tree.PathTo("nowhere")
	require.ErrorIs(t, err, graph.ErrUnknownNode)
}
