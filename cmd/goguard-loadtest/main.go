// Command goguard-loadtest measures guard evaluation throughput against
// Redis (or miniredis) and memo lookup throughput under contention.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/perf"
	"github.com/MrEthical07/goGuard/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		clients     = flag.Int("clients", 50000, "number of client ids to seed")
		signedIn    = flag.Float64("signed-in", 0.8, "fraction of seeded clients holding a token")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase")
		memoKeys    = flag.Int("memo-keys", 150, "distinct memo keys drawn by the memo phase")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "gg", "token key prefix")
	)
	flag.Parse()

	if *clients <= 0 || *concurrency <= 0 || *ops <= 0 || *memoKeys <= 0 {
		fmt.Fprintln(os.Stderr, "clients, concurrency, ops and memo-keys must be > 0")
		os.Exit(2)
	}
	if *signedIn < 0 || *signedIn > 1 {
		fmt.Fprintln(os.Stderr, "signed-in must be within [0, 1]")
		os.Exit(2)
	}

	ctx := context.Background()

	client, cleanup, err := connect(*redisAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	cfg := goGuard.DefaultConfig()
	cfg.Guard.RedisPrefix = *prefix
	cfg.Metrics.EnableLatencyHistograms = true

	engine, err := goGuard.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine build: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ids := make([]string, *clients)
	wantTokens := int(float64(*clients) * *signedIn)
	fmt.Printf("seeding %d clients (%d signed in)...\n", *clients, wantTokens)
	startSeed := time.Now()
	for i := range ids {
		ids[i] = uuid.NewString()
		if i >= wantTokens {
			continue
		}
		cctx := storage.WithClientID(ctx, ids[i])
		if err := engine.Store().Set(cctx, cfg.Guard.TokenKey, uuid.NewString()); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	var allowed atomic.Int64
	guardStats := runPhase(*ops, *concurrency, 7919, func(r *rand.Rand) error {
		cctx := storage.WithClientID(ctx, ids[r.Intn(len(ids))])
		if engine.Check(cctx).Allowed {
			allowed.Add(1)
		}
		return nil
	})

	square := perf.Memoize(func(n int) int { return n * n }, perf.WithEngine(engine))
	memoStats := runPhase(*ops, *concurrency, 6151, func(r *rand.Rand) error {
		n := r.Intn(*memoKeys)
		if got := square.Call(n); got != n*n {
			return fmt.Errorf("square(%d) = %d", n, got)
		}
		return nil
	})

	snap := engine.MetricsSnapshot()
	fmt.Println("---- results ----")
	printStats("guard", guardStats)
	fmt.Printf("guard: allowed=%d redirected=%d store_failures=%d\n",
		allowed.Load(),
		snap.Counters[goGuard.MetricGuardRedirected],
		snap.Counters[goGuard.MetricGuardStoreFailure],
	)
	printStats("memo", memoStats)
	fmt.Printf("memo: hits=%d misses=%d evicted=%d\n",
		snap.Counters[goGuard.MetricMemoHit],
		snap.Counters[goGuard.MetricMemoMiss],
		snap.Counters[goGuard.MetricMemoEvicted],
	)
}

func connect(addr string) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		fmt.Printf("using redis at %s\n", addr)
		return client, func() { _ = client.Close() }, nil
	}

	mr, err := miniredis.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("start miniredis: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	fmt.Printf("using miniredis at %s\n", mr.Addr())
	return client, func() {
		_ = client.Close()
		mr.Close()
	}, nil
}

func runPhase(ops, concurrency int, seedStride int64, op func(r *rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    atomic.Int64
		failures  atomic.Int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seedStride))
			local := make([]time.Duration, 0, ops/concurrency+1)
			for cursor.Add(1) <= int64(ops) {
				t0 := time.Now()
				err := op(r)
				local = append(local, time.Since(t0))
				if err != nil {
					failures.Add(1)
				}
			}
			mu.Lock()
			latencies = append(latencies, local...)
			mu.Unlock()
		}(w)
	}
	wg.Wait()

	return computeStats(time.Since(start), latencies, failures.Load())
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	switch {
	case len(sorted) == 0:
		return 0
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[len(sorted)-1]
	}
	return sorted[(len(sorted)-1)*p/100]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
