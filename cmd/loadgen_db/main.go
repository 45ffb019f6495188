package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/atharv3903/ambroute/internal/db"
	"github.com/atharv3903/ambroute/internal/loadstat"
	"github.com/atharv3903/ambroute/internal/model"
)

func main() {
	dsn := flag.String("dsn", "", "MySQL DSN used to pick roads (required)")
	server := flag.String("server", "http://localhost:8080", "AMBROUTE base URL")
	name := flag.String("scenario", "marica", "scenario whose roads are updated")
	duration := flag.Duration("duration", 5*time.Second, "run time per client count")
	out := flag.String("out", "results_db.csv", "CSV output file")
	flag.Parse()

	if *dsn == "" {
		log.Fatalf("usage: loadgen_db -dsn <mysql_dsn> [-server url] [-scenario name]")
	}

	conn, err := db.Open(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	roads, err := db.Store{DB: conn}.RoadIDs(context.Background(), *name)
	if err != nil {
		log.Fatal(err)
	}
	if len(roads) == 0 {
		log.Fatalf("scenario %q has no roads", *name)
	}

	http.Get(*server + "/debug/clear_cache")

	fmt.Printf("Running road update workload on %d roads of %s\n", len(roads), *name)

	var results []loadstat.Summary
	for _, clients := range []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20} {
		fmt.Printf("\n== %d CLIENTS ==\n", clients)
		s := runUpdates(*server, roads, clients, *duration)
		results = append(results, s)
		fmt.Printf("RPS: %.2f | Avg %v | P99 %v | Errors=%d/%d\n",
			s.Throughput, s.Avg, s.P99, s.Errors, s.Total)
	}

	fmt.Println()
	loadstat.WriteCSV(os.Stdout, results)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := loadstat.WriteCSV(f, results); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nSaved %s\n", *out)
}

// randomUpdate either retimes a road to 1..10 minutes or opens or closes it.
func randomUpdate(rng *rand.Rand, roads []int64) model.RoadUpdateRequest {
	req := model.RoadUpdateRequest{RoadID: roads[rng.Intn(len(roads))]}
	if rng.Intn(2) == 0 {
		m := 1 + rng.Int63n(10)
		req.Minutes = &m
	} else {
		closed := rng.Intn(2) == 1
		req.Closed = &closed
	}
	return req
}

func runUpdates(server string, roads []int64, clients int, dur time.Duration) loadstat.Summary {
	client := &http.Client{Timeout: 5 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var rec loadstat.Recorder
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < clients; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			for ctx.Err() == nil {
				body, _ := json.Marshal(randomUpdate(rng, roads))

				t0 := time.Now()
				resp, err := client.Post(server+"/road/update", "application/json", bytes.NewReader(body))
				lat := time.Since(t0)
				if err != nil {
					rec.Observe(lat, err)
					continue
				}

				var ur model.RoadUpdateResponse
				err = json.NewDecoder(resp.Body).Decode(&ur)
				resp.Body.Close()
				if err == nil && !ur.OK {
					err = fmt.Errorf("status %d", resp.StatusCode)
				}
				rec.Observe(lat, err)
			}
		}(time.Now().UnixNano() + int64(w))
	}
	wg.Wait()

	return rec.Summarize(clients, time.Since(start))
}
