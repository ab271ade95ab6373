// Package plan splits an input into record-aligned chunks, one per worker.
package plan

import (
	"fmt"
	"math"

	"github.com/nbukhari/onebrc/pkg/contract"
)

// DefaultMaxChunk keeps every chunk addressable with a 32-bit length.
const DefaultMaxChunk = math.MaxInt32 - 100_000

// Plan returns adjacent ranges covering [0, src.Len()). Every range but the
// last ends right after a newline; the last one ends at src.Len().
//
// workers < 1 counts as 1, and so does any count larger than the input.
// If the target chunk size exceeds maxChunk the worker count is doubled until
// it fits. maxChunk <= 0 selects DefaultMaxChunk.
func Plan(src contract.Bytes, workers, maxChunk int) ([]contract.ByteRange, error) {
	total := src.Len()
	if total == 0 {
		return nil, nil
	}
	if maxChunk <= 0 {
		maxChunk = DefaultMaxChunk
	}
	if workers < 1 || total < workers {
		workers = 1
	}
	target := total / workers
	for target > maxChunk {
		workers *= 2
		target = total / workers
	}

	ranges := make([]contract.ByteRange, 0, workers)
	cur := 0
	for k := 1; k <= workers && cur < total; k++ {
		if k == workers {
			ranges = append(ranges, contract.ByteRange{Start: cur, Len: total - cur})
			break
		}
		end := boundary(src, max(k*target, cur), total)
		ranges = append(ranges, contract.ByteRange{Start: cur, Len: end - cur})
		cur = end
	}

	if err := Validate(ranges, total); err != nil {
		return nil, err
	}
	return ranges, nil
}

// boundary returns the offset just after the first newline at or after pos,
// or total when there is none.
func boundary(src contract.Bytes, pos, total int) int {
	for pos < total {
		if src.At(pos) == contract.Newline {
			return pos + 1
		}
		pos++
	}
	return total
}

// Validate checks that ranges are non-empty, adjacent, start at 0 and end at total.
func Validate(ranges []contract.ByteRange, total int) error {
	if len(ranges) == 0 {
		if total != 0 {
			return &contract.PlannerInvariantError{Index: 0, Detail: fmt.Sprintf("no ranges for %d bytes", total)}
		}
		return nil
	}
	if ranges[0].Start != 0 {
		return &contract.PlannerInvariantError{Index: 0, Detail: fmt.Sprintf("first range starts at %d", ranges[0].Start)}
	}
	for i, r := range ranges {
		if r.Len <= 0 {
			return &contract.PlannerInvariantError{Index: i, Detail: fmt.Sprintf("length %d", r.Len)}
		}
		if i > 0 && ranges[i-1].End() != r.Start {
			return &contract.PlannerInvariantError{Index: i, Detail: fmt.Sprintf("starts at %d, previous ends at %d", r.Start, ranges[i-1].End())}
		}
	}
	if last := ranges[len(ranges)-1]; last.End() != total {
		return &contract.PlannerInvariantError{Index: len(ranges) - 1, Detail: fmt.Sprintf("last range ends at %d, want %d", last.End(), total)}
	}
	return nil
}
