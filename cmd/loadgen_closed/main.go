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
	"os"
	"sync"
	"time"

	"github.com/atharv3903/ambroute/internal/loadstat"
	"github.com/atharv3903/ambroute/internal/model"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "AMBROUTE base URL")
	name := flag.String("scenario", "marica", "scenario to query")
	duration := flag.Duration("duration", 10*time.Second, "run time per client count")
	maxClients := flag.Int("clients", 100, "largest number of concurrent clients")
	out := flag.String("out", "results.csv", "CSV output file")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	base := fmt.Sprintf("%s/scenarios/%s", *server, url.PathEscape(*name))

	places, err := fetchPlaces(client, base)
	if err != nil {
		log.Fatal(err)
	}

	// warm the server so cold-start effects don't matter
	client.Get(*server + "/debug/clear_cache")
	client.Get(base + "/nearest?" + url.Values{"origin": {places[0]}}.Encode())

	var results []loadstat.Summary
	for n := 2; n <= *maxClients; n += 2 {
		fmt.Printf("\n== Running test with %d clients ==\n", n)
		results = append(results, runClosedLoop(base, places, n, *duration))
	}

	fmt.Println("\n========== CLOSED-LOOP RESULTS (CSV) ==========")
	loadstat.WriteCSV(os.Stdout, results)
	fmt.Println("===============================================")

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := loadstat.WriteCSV(f, results); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved %s\n", *out)
}

func fetchPlaces(client *http.Client, base string) ([]string, error) {
	resp, err := client.Get(base + "/places")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: status %d", resp.StatusCode)
	}

	var pr model.PlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	if len(pr.Places) == 0 {
		return nil, fmt.Errorf("scenario %s has no places", pr.Scenario)
	}
	ids := make([]string, len(pr.Places))
	for i, p := range pr.Places {
		ids[i] = p.ID
	}
	return ids, nil
}

// runClosedLoop keeps exactly clients requests in flight for dur: each
// worker issues its next route query as soon as the previous one returns.
func runClosedLoop(base string, places []string, clients int, dur time.Duration) loadstat.Summary {
	transport := &http.Transport{
		MaxIdleConns:        500,
		MaxIdleConnsPerHost: 500,
		MaxConnsPerHost:     2000,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	defer transport.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()

	var rec loadstat.Recorder
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			for ctx.Err() == nil {
				q := url.Values{
					"src": {places[rng.Intn(len(places))]},
					"dst": {places[rng.Intn(len(places))]},
				}

				t0 := time.Now()
				resp, err := client.Get(base + "/route?" + q.Encode())
				lat := time.Since(t0)
				if err != nil {
					rec.Observe(lat, err)
					continue
				}

				var rr model.RouteResponse
				json.NewDecoder(resp.Body).Decode(&rr)
				resp.Body.Close()
				rec.Observe(lat, nil)
				if rr.CacheHit {
					rec.Hit()
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()

	s := rec.Summarize(clients, time.Since(start))
	fmt.Printf("RPS: %.2f | Avg %v | P99 %v | Hit %.1f%%\n", s.Throughput, s.Avg, s.P99, s.HitRate())
	return s
}
