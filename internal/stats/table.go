package stats

import (
	"unsafe"

	"github.com/zeebo/xxh3"
)

type entry struct {
	hash uint64
	mid  int
}

// use power of 2 for fast modulo calculation
const nBuckets = 1 << 12

// Table is the per-chunk key→Stats mapping. Keys are looked up straight from
// the scanned bytes; a key string is only allocated the first time it is seen.
// Iteration follows first-insertion order.
//
// A Table is owned by one goroutine.
type Table struct {
	buckets [][]entry
	keys    []string
	values  []Stats
}

// NewTable sizes the dense storage for about size keys.
func NewTable(size int) *Table {
	return &Table{
		buckets: make([][]entry, nBuckets),
		keys:    make([]string, 0, size),
		values:  make([]Stats, 0, size),
	}
}

// Add records value v for key.
func (t *Table) Add(key []byte, v int64) {
	hash := xxh3.Hash(key)
	b := &t.buckets[hash&(nBuckets-1)]
	for _, e := range *b {
		if e.hash == hash && t.keys[e.mid] == unsafe.String(unsafe.SliceData(key), len(key)) {
			t.values[e.mid] = t.values[e.mid].Add(v)
			return
		}
	}
	*b = append(*b, entry{hash: hash, mid: len(t.keys)})
	t.keys = append(t.keys, string(key)) // actually allocate string
	t.values = append(t.values, New(v))
}

// Get returns the statistics for key.
func (t *Table) Get(key string) (Stats, bool) {
	hash := xxh3.HashString(key)
	for _, e := range t.buckets[hash&(nBuckets-1)] {
		if e.hash == hash && t.keys[e.mid] == key {
			return t.values[e.mid], true
		}
	}
	return Stats{}, false
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return len(t.keys) }

// Each calls fn for every key in insertion order.
func (t *Table) Each(fn func(key string, s Stats)) {
	for i, k := range t.keys {
		fn(k, t.values[i])
	}
}
