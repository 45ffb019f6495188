package algo_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/atharv3903/ambroute/internal/algo"
	"github.com/atharv3903/ambroute/internal/graph"
)

// ExampleNearest finds the closest hospital to an ambulance parked at A.
func ExampleNearest() {
	g := graph.New[string, int64]()
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		g.AddNode(n)
	}
	g.AddEdge("A", "B", 4)
	g.AddEdge("A", "C", 2)
	g.AddEdge("B", "C", 1)
	g.AddEdge("B", "D", 5)
	g.AddEdge("C", "D", 8)
	g.AddEdge("C", "E", 10)
	g.AddEdge("D", "E", 2)
	g.AddEdge("E", "F", 3)

	res, err := algo.Nearest(context.Background(), g, "A", []string{"D", "F"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("nearest=%s minutes=%d path=%s\n", res.Candidate, res.Distance, strings.Join(res.Path, " -> "))
	// Output: nearest=D minutes=8 path=A -> C -> B -> D
}

// ExampleRoundTrip sends a unit from its base to an incident and back.
func ExampleRoundTrip() {
	g := graph.New[string, int64]()
	for _, n := range []string{"base", "x", "incident"} {
		g.AddNode(n)
	}
	g.AddEdge("base", "x", 2)
	g.AddEdge("x", "incident", 3)
	g.AddEdge("base", "incident", 9)

	trip, err := algo.RoundTrip(context.Background(), g, "base", "incident")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(trip.Out.Cost, trip.Back.Cost, trip.Total)
	fmt.Println(strings.Join(trip.Path, " -> "))
	// Output:
	// 5 5 10
	// base -> x -> incident -> x -> base
}
