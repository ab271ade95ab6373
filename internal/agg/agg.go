// Package agg merges per-chunk partial results into the final result.
package agg

import (
	"sync"

	"github.com/dolthub/swiss"

	"github.com/nbukhari/onebrc/internal/stats"
)

// Result is the merged key→Stats mapping. Keys remember the order in which
// they were first merged in.
type Result struct {
	m    *swiss.Map[string, stats.Stats]
	keys []string
}

// New returns an empty result sized for about size keys.
func New(size int) *Result {
	return &Result{
		m:    swiss.NewMap[string, stats.Stats](uint32(max(size, 1))),
		keys: make([]string, 0, size),
	}
}

// Put merges s into the statistics already held for key.
func (r *Result) Put(key string, s stats.Stats) {
	if cur, ok := r.m.Get(key); ok {
		r.m.Put(key, stats.Merge(cur, s))
		return
	}
	r.m.Put(key, s)
	r.keys = append(r.keys, key)
}

// Absorb merges every key of o into r. o must not be used afterwards.
func (r *Result) Absorb(o *Result) *Result {
	for _, k := range o.keys {
		s, _ := o.m.Get(k)
		r.Put(k, s)
	}
	return r
}

// Get returns the statistics for key.
func (r *Result) Get(key string) (stats.Stats, bool) { return r.m.Get(key) }

// Len returns the number of distinct keys.
func (r *Result) Len() int { return r.m.Count() }

// Keys returns the keys in first-merged order. The slice is shared.
func (r *Result) Keys() []string { return r.keys }

// Overflowed returns the first key, in first-merged order, whose sum
// overflowed.
func (r *Result) Overflowed() (string, stats.Stats, bool) {
	for _, k := range r.keys {
		if s, _ := r.m.Get(k); s.Overflow {
			return k, s, true
		}
	}
	return "", stats.Stats{}, false
}

// Each calls fn for every key in first-merged order.
func (r *Result) Each(fn func(key string, s stats.Stats)) {
	for _, k := range r.keys {
		s, _ := r.m.Get(k)
		fn(k, s)
	}
}

func fromTable(t *stats.Table) *Result {
	r := New(t.Len())
	t.Each(r.Put)
	return r
}

// Merge folds the partials in order into one Result.
func Merge(parts []*stats.Table) *Result {
	size := 0
	for _, p := range parts {
		size = max(size, p.Len())
	}
	r := New(size)
	for _, p := range parts {
		p.Each(r.Put)
	}
	return r
}

// MergeTree reduces the partials pairwise, merging each level's pairs
// concurrently. The right partner of a pair is folded into the left one, so
// key order matches Merge.
func MergeTree(parts []*stats.Table) *Result {
	if len(parts) == 0 {
		return New(0)
	}
	level := make([]*Result, len(parts))
	var wg sync.WaitGroup
	for i, p := range parts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			level[i] = fromTable(p)
		}()
	}
	wg.Wait()

	for len(level) > 1 {
		next := make([]*Result, (len(level)+1)/2)
		for i := range next {
			if 2*i+1 == len(level) {
				next[i] = level[2*i]
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				next[i] = level[2*i].Absorb(level[2*i+1])
			}()
		}
		wg.Wait()
		level = next
	}
	return level[0]
}
