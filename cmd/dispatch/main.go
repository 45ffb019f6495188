// Command dispatch answers one routing question against a scenario and
// prints the result: the nearest facility of a kind, or with -incident the
// round trip of an ambulance leaving from -origin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/atharv3903/ambroute/internal/algo"
	"github.com/atharv3903/ambroute/internal/graph"
	"github.com/atharv3903/ambroute/internal/logging"
	"github.com/atharv3903/ambroute/internal/scenario"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "dispatch:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fl := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	fl.SetOutput(stderr)
	name := fl.String("scenario", "marica", "scenario name")
	file := fl.String("file", "", "YAML scenario file to load in addition to the built-in ones")
	origin := fl.String("origin", "", "place the search starts from (required)")
	kind := fl.String("kind", string(scenario.Hospital), "facility kind to look for")
	incident := fl.String("incident", "", "plan a round trip from -origin to this place instead")
	random := fl.Bool("random", false, "replace road times with random minutes in [1, 10]")
	seed := fl.Int64("seed", 0, "random seed, 0 picks one from the clock")
	level := fl.String("log-level", "warn", "log level")
	if err := fl.Parse(args); err != nil {
		return err
	}
	if *origin == "" {
		return fmt.Errorf("-origin is required")
	}

	log, err := logging.New(stderr, *level)
	if err != nil {
		return err
	}

	sc, err := loadScenario(ctx, *name, *file)
	if err != nil {
		return err
	}
	if *random {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		sc, err = scenario.RandomizeMinutes(sc, rand.New(rand.NewSource(s)), 1, 10)
		if err != nil {
			return err
		}
		log.Info("randomized road times", "seed", s)
	}

	g, err := sc.Build()
	if err != nil {
		return err
	}
	log.Debug("graph built", "scenario", sc.Name, "places", g.Len(), "roads", len(sc.Roads))

	if *incident != "" {
		return printTrip(ctx, stdout, log, sc.Name, g, *origin, *incident)
	}

	k := scenario.Kind(*kind)
	if !k.Valid() {
		return fmt.Errorf("unknown kind %q", *kind)
	}
	res, err := algo.Nearest(ctx, g, *origin, sc.Facilities(k))
	if err != nil {
		return err
	}
	log.Info("nearest", "scenario", sc.Name, "origin", *origin, "explored", res.Explored)

	fmt.Fprintf(stdout, "nearest %s: %s\n", k, res.Candidate)
	fmt.Fprintf(stdout, "minutes: %d\n", res.Distance)
	fmt.Fprintf(stdout, "path: %s\n", strings.Join(res.Path, " -> "))
	return nil
}

func printTrip(ctx context.Context, w io.Writer, log *slog.Logger, name string, g *graph.Graph[string, int64], base, incident string) error {
	trip, err := algo.RoundTrip(ctx, g, base, incident)
	if err != nil {
		return err
	}
	log.Info("round trip", "scenario", name, "base", base, "incident", incident, "total", trip.Total)

	fmt.Fprintf(w, "out (%d min): %s\n", trip.Out.Cost, strings.Join(trip.Out.Path, " -> "))
	fmt.Fprintf(w, "back (%d min): %s\n", trip.Back.Cost, strings.Join(trip.Back.Path, " -> "))
	fmt.Fprintf(w, "total: %d minutes\n", trip.Total)
	return nil
}

func loadScenario(ctx context.Context, name, file string) (scenario.Scenario, error) {
	all := scenario.Builtin()
	if file != "" {
		extra, err := scenario.Load(file)
		if err != nil {
			return scenario.Scenario{}, err
		}
		all = append(all, extra...)
	}
	reg, err := scenario.NewRegistry(all...)
	if err != nil {
		return scenario.Scenario{}, err
	}
	return reg.LoadScenario(ctx, name)
}
