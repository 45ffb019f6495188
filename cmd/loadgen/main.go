package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/atharv3903/ambroute/internal/db"
	"github.com/atharv3903/ambroute/internal/loadstat"
	"github.com/atharv3903/ambroute/internal/model"
)

func main() {
	dsn := flag.String("dsn", "", "MySQL DSN used to list places (required)")
	server := flag.String("server", "http://localhost:8080", "AMBROUTE base URL")
	name := flag.String("scenario", "marica", "scenario to query")
	duration := flag.Duration("duration", 30*time.Second, "how long to run")
	flag.Parse()

	if *dsn == "" {
		log.Fatalf("usage: loadgen -dsn <mysql_dsn> [-server url] [-scenario name]")
	}

	conn, err := db.Open(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	places, err := db.Store{DB: conn}.PlaceIDs(ctx, *name)
	if err != nil {
		log.Fatal(err)
	}
	if len(places) == 0 {
		log.Fatalf("scenario %q has no places", *name)
	}
	log.Printf("Loaded %d places from %s", len(places), *name)

	client := &http.Client{Timeout: 10 * time.Second}

	// start from empty caches so the stats cover this run only
	if _, err := client.Get(*server + "/debug/clear_cache"); err != nil {
		log.Fatalf("failed to clear cache: %v", err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	endpoint := fmt.Sprintf("%s/scenarios/%s/nearest", *server, url.PathEscape(*name))

	log.Printf("Running loadgen for %v…", *duration)

	var rec loadstat.Recorder
	start := time.Now()
	for ctx.Err() == nil {
		q := url.Values{"origin": {places[rnd.Intn(len(places))]}}

		t0 := time.Now()
		resp, err := client.Get(endpoint + "?" + q.Encode())
		lat := time.Since(t0)
		if err != nil {
			rec.Observe(lat, err)
			continue
		}

		var nr model.NearestResponse
		err = json.NewDecoder(resp.Body).Decode(&nr)
		resp.Body.Close()
		if err == nil && resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("status %d", resp.StatusCode)
		}
		rec.Observe(lat, err)
		if nr.CacheHit {
			rec.Hit()
		}
	}
	sum := rec.Summarize(1, time.Since(start))

	var stats model.CacheStats
	if resp, err := client.Get(*server + "/debug/cache_stats"); err == nil {
		json.NewDecoder(resp.Body).Decode(&stats)
		resp.Body.Close()
	}

	fmt.Println("\n========== LOADGEN SUMMARY ==========")
	fmt.Printf("Total Requests: %d\n", sum.Total)
	fmt.Printf("Errors: %d\n", sum.Errors)
	fmt.Printf("RouteCache Hit Rate: %.1f%%\n", sum.HitRate())
	if stats.Gets > 0 {
		fmt.Printf("GraphCache Hit Rate: %.1f%% (gets=%d, hits=%d, puts=%d, evictions=%d)\n",
			float64(stats.Hits)/float64(stats.Gets)*100, stats.Gets, stats.Hits, stats.Puts, stats.Evictions)
	}
	fmt.Printf("Avg Latency: %v\n", sum.Avg)
	fmt.Printf("Fastest: %v\n", sum.Min)
	fmt.Printf("Slowest: %v\n", sum.Max)
	fmt.Println("=====================================")
}
