package perf

import (
	"encoding/json"
	"fmt"
	"sync"

	goGuard "github.com/MrEthical07/goGuard"
	"golang.org/x/sync/singleflight"
)

// Memo caches results of a pure function, evicting the oldest inserted key
// once more than its bound are held.
type Memo[A, R any] struct {
	fn    func(A) R
	keyFn func(A) string
	max   int
	cfg   config

	mu      sync.Mutex
	entries map[string]R
	order   []string
	group   singleflight.Group
}

type memoResult[R any] struct {
	val R
}

// Memoize caches fn keyed by the JSON encoding of its argument.
//
// Arguments that encode identically share an entry, so fn must not depend
// on unexported fields or on anything JSON drops.
func Memoize[A, R any](fn func(A) R, opts ...Option) *Memo[A, R] {
	return MemoizeWithKey(fn, JSONKey[A], opts...)
}

// MemoizeWithKey caches fn keyed by keyFn. A nil keyFn means JSONKey.
func MemoizeWithKey[A, R any](fn func(A) R, keyFn func(A) string, opts ...Option) *Memo[A, R] {
	if keyFn == nil {
		keyFn = JSONKey[A]
	}
	cfg := newConfig(opts)
	return &Memo[A, R]{
		fn:      fn,
		keyFn:   keyFn,
		max:     cfg.maxEntries,
		cfg:     cfg,
		entries: make(map[string]R),
	}
}

// JSONKey encodes arg as JSON. Values JSON cannot encode fall back to their
// Go syntax representation.
func JSONKey[A any](arg A) string {
	data, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%T:%#v", arg, arg)
	}
	return string(data)
}

// Call returns the cached result for arg, computing it on a miss.
// Concurrent misses on one key share a single computation.
func (m *Memo[A, R]) Call(arg A) R {
	key := m.keyFn(arg)

	if v, ok := m.lookup(key); ok {
		m.cfg.metrics.Inc(goGuard.MetricMemoHit)
		return v
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		if v, ok := m.lookup(key); ok {
			return memoResult[R]{val: v}, nil
		}
		m.cfg.metrics.Inc(goGuard.MetricMemoMiss)
		v := m.fn(arg)
		m.store(key, v)
		return memoResult[R]{val: v}, nil
	})
	return v.(memoResult[R]).val
}

// Has reports whether arg's result is cached.
func (m *Memo[A, R]) Has(arg A) bool {
	_, ok := m.lookup(m.keyFn(arg))
	return ok
}

// Len returns the number of cached entries.
func (m *Memo[A, R]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Reset empties the cache.
func (m *Memo[A, R]) Reset() {
	m.mu.Lock()
	m.entries = make(map[string]R)
	m.order = nil
	m.mu.Unlock()
}

func (m *Memo[A, R]) lookup(key string) (R, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memo[A, R]) store(key string, v R) {
	m.mu.Lock()
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = v

	evicted := 0
	for len(m.entries) > m.max && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
		evicted++
	}
	m.mu.Unlock()

	for i := 0; i < evicted; i++ {
		m.cfg.metrics.Inc(goGuard.MetricMemoEvicted)
	}
}
