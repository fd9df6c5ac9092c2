// Package main provides the entry point for strand-bench.
//
// strand-bench drives load against a Strand server and reports
// throughput and latency percentiles. Values carry a murmur3 checksum
// in their prefix so read-backs can detect corruption.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/time/rate"

	"github.com/strandkv/strand/internal/cli/client"
	"github.com/strandkv/strand/internal/resp"
)

type options struct {
	addr      string
	clients   int
	requests  int
	rateLimit int
	valueSize int
	setRatio  float64
	keySpace  int
}

type result struct {
	latencies []time.Duration
	errors    int
	corrupted int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	flag.StringVar(&opts.addr, "server", "localhost:6379", "Server address")
	flag.IntVar(&opts.clients, "clients", 8, "Concurrent connections")
	flag.IntVar(&opts.requests, "requests", 10000, "Requests per connection")
	flag.IntVar(&opts.rateLimit, "rate", 0, "Total ops/sec cap (0 = unlimited)")
	flag.IntVar(&opts.valueSize, "value-size", 64, "Value payload size in bytes")
	flag.Float64Var(&opts.setRatio, "set-ratio", 0.2, "Fraction of requests that are SET")
	flag.IntVar(&opts.keySpace, "keys", 1000, "Distinct keys per connection")
	flag.Parse()

	if opts.valueSize < 8 {
		return fmt.Errorf("value-size must be at least 8")
	}

	runID := ulid.Make().String()
	fmt.Printf("run %s: %d clients x %d requests against %s\n",
		runID, opts.clients, opts.requests, opts.addr)

	var limiter *rate.Limiter
	if opts.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.rateLimit), opts.rateLimit)
	}

	results := make([]result, opts.clients)
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < opts.clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = worker(i, runID, opts, limiter)
		}(i)
	}
	wg.Wait()

	report(results, time.Since(start))
	return nil
}

// worker runs the request loop for one connection.
func worker(id int, runID string, opts options, limiter *rate.Limiter) result {
	c := client.New(opts.addr, client.WithTimeout(10*time.Second))
	defer c.Close()

	rng := rand.New(rand.NewSource(int64(id) + time.Now().UnixNano()))
	res := result{latencies: make([]time.Duration, 0, opts.requests)}
	ctx := context.Background()

	for n := 0; n < opts.requests; n++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				res.errors++
				continue
			}
		}

		key := fmt.Sprintf("%s:%d:%d", runID, id, rng.Intn(opts.keySpace))

		begin := time.Now()
		var err error
		if rng.Float64() < opts.setRatio {
			_, err = c.Do("SET", key, string(makeValue(rng, opts.valueSize)))
		} else {
			var reply resp.Value
			reply, err = c.Do("GET", key)
			if err == nil && reply.Kind == resp.BulkString && !verifyValue(reply.Str) {
				res.corrupted++
			}
		}
		res.latencies = append(res.latencies, time.Since(begin))
		if err != nil {
			res.errors++
		}
	}
	return res
}

// makeValue builds a payload with its murmur3 checksum in the first
// four bytes, covering the rest.
func makeValue(rng *rand.Rand, size int) []byte {
	v := make([]byte, size)
	for i := 4; i < size; i++ {
		v[i] = byte('a' + rng.Intn(26))
	}
	binary.BigEndian.PutUint32(v[:4], murmur3.Sum32(v[4:]))
	return v
}

func verifyValue(v []byte) bool {
	if len(v) < 4 {
		return false
	}
	return binary.BigEndian.Uint32(v[:4]) == murmur3.Sum32(v[4:])
}

func report(results []result, elapsed time.Duration) {
	var all []time.Duration
	var errs, corrupted int
	for _, r := range results {
		all = append(all, r.latencies...)
		errs += r.errors
		corrupted += r.corrupted
	}
	if len(all) == 0 {
		fmt.Println("no requests completed")
		return
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	fmt.Printf("requests:  %d in %v (%.0f ops/sec)\n",
		len(all), elapsed.Round(time.Millisecond), float64(len(all))/elapsed.Seconds())
	fmt.Printf("errors:    %d, corrupted reads: %d\n", errs, corrupted)
	fmt.Printf("latency:   p50=%v p95=%v p99=%v max=%v\n",
		percentile(all, 50), percentile(all, 95), percentile(all, 99), all[len(all)-1])
}

func percentile(sorted []time.Duration, p int) time.Duration {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
