package loadstat_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/ambroute/internal/loadstat"
)

func TestSummarize(t *testing.T) {
	var r loadstat.Recorder
	for i := 1; i <= 100; i++ {
		r.Observe(time.Duration(i)*time.Millisecond, nil)
	}
	r.Observe(0, errors.New("refused"))
	r.Hit()
	r.Hit()

	s := r.Summarize(4, 2*time.Second)
	assert.Equal(t, int64(101), s.Total)
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 51*time.Millisecond, s.P50)
	assert.Equal(t, 96*time.Millisecond, s.P95)
	assert.Equal(t, 100*time.Millisecond, s.P99)
	assert.InDelta(t, 50.5, s.Throughput, 1e-9)
	assert.InDelta(t, 2.0/101*100, s.HitRate(), 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	var r loadstat.Recorder
	s := r.Summarize(1, time.Second)
	require.Zero(t, s.Total)
	require.Zero(t, s.Avg)
	require.Zero(t, s.HitRate())
}

func TestRecorderConcurrent(t *testing.T) {
	var r loadstat.Recorder
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				r.Observe(time.Microsecond, nil)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(2000), r.Summarize(8, time.Second).Total)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []loadstat.Summary{{
		Clients: 2, Total: 10, Errors: 1,
		Avg: 1500 * time.Microsecond, P50: time.Millisecond, P95: 2 * time.Millisecond, P99: 3 * time.Millisecond,
		Throughput: 5,
	}}
	require.NoError(t, loadstat.WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "clients,avg_ms,p50_ms,p95_ms,p99_ms,throughput_rps,errors,total", lines[0])
	require.Equal(t, "2,1.500,1.000,2.000,3.000,5.00,1,10", lines[1])
}
