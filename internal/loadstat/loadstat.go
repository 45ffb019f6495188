// Package loadstat collects request latencies for the load generators and
// summarises them.
package loadstat

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Recorder is safe for use by many workers.
type Recorder struct {
	mu        sync.Mutex
	latencies []time.Duration
	total     int64
	errors    int64
	hits      int64
}

// Observe records one request. Failed requests count towards the total but
// their latency is not kept.
func (r *Recorder) Observe(lat time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	if err != nil {
		r.errors++
		return
	}
	r.latencies = append(r.latencies, lat)
}

// Hit counts a response served from the route cache.
func (r *Recorder) Hit() {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

type Summary struct {
	Clients    int
	Total      int64
	Errors     int64
	CacheHits  int64
	Avg        time.Duration
	Min        time.Duration
	Max        time.Duration
	P50        time.Duration
	P95        time.Duration
	P99        time.Duration
	Throughput float64
}

// HitRate is the share of requests answered from cache, in percent.
func (s Summary) HitRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.Total) * 100
}

// Summarize computes the summary of everything observed so far. dur is the
// wall time the load ran for.
func (r *Recorder) Summarize(clients int, dur time.Duration) Summary {
	r.mu.Lock()
	l := make([]time.Duration, len(r.latencies))
	copy(l, r.latencies)
	s := Summary{Clients: clients, Total: r.total, Errors: r.errors, CacheHits: r.hits}
	r.mu.Unlock()

	if dur > 0 {
		s.Throughput = float64(s.Total) / dur.Seconds()
	}
	if len(l) == 0 {
		return s
	}

	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })

	var sum time.Duration
	for _, x := range l {
		sum += x
	}
	s.Avg = sum / time.Duration(len(l))
	s.Min, s.Max = l[0], l[len(l)-1]
	s.P50, s.P95, s.P99 = percentile(l, 0.50), percentile(l, 0.95), percentile(l, 0.99)
	return s
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p float64) time.Duration {
	i := int(float64(len(sorted)) * p)
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

var header = []string{"clients", "avg_ms", "p50_ms", "p95_ms", "p99_ms", "throughput_rps", "errors", "total"}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}

// WriteCSV writes one row per summary, with a header.
func WriteCSV(w io.Writer, rows []Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range rows {
		rec := []string{
			fmt.Sprint(s.Clients),
			ms(s.Avg), ms(s.P50), ms(s.P95), ms(s.P99),
			fmt.Sprintf("%.2f", s.Throughput),
			fmt.Sprint(s.Errors),
			fmt.Sprint(s.Total),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
