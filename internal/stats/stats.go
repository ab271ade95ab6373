// Package stats holds per-key running statistics over values scaled by ten.
package stats

// Stats summarises the values seen for one key. All fields are tenths except
// Count. Overflow is sticky: once Sum has wrapped it stays set through every
// later Add and Merge, and the statistics must not be reported.
type Stats struct {
	Min, Max, Sum int64
	Count         int64
	Overflow      bool
}

// New starts statistics from a single value.
func New(v int64) Stats {
	return Stats{Min: v, Max: v, Sum: v, Count: 1}
}

// Add folds one more value in.
func (s Stats) Add(v int64) Stats {
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
	s.Sum, s.Overflow = addSum(s.Sum, v, s.Overflow)
	s.Count++
	return s
}

// Merge combines statistics of two disjoint value sets. It is associative and
// commutative.
func Merge(a, b Stats) Stats {
	sum, overflow := addSum(a.Sum, b.Sum, a.Overflow || b.Overflow)
	return Stats{
		Min:      min(a.Min, b.Min),
		Max:      max(a.Max, b.Max),
		Sum:      sum,
		Count:    a.Count + b.Count,
		Overflow: overflow,
	}
}

func addSum(a, b int64, overflow bool) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		overflow = true
	}
	return s, overflow
}

// MeanTenths returns Sum/Count rounded half away from zero, in tenths.
func (s Stats) MeanTenths() int64 {
	if s.Count == 0 {
		return 0
	}
	q, r := s.Sum/s.Count, s.Sum%s.Count
	switch {
	case r > 0 && r >= s.Count-r:
		q++
	case r < 0 && -r >= s.Count+r:
		q--
	}
	return q
}
