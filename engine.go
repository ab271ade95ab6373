// Package onebrc computes min/mean/max per key over a large "key;value" file
// by mapping it into memory and scanning record-aligned chunks in parallel.
package onebrc

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nbukhari/onebrc/internal/agg"
	"github.com/nbukhari/onebrc/internal/format"
	"github.com/nbukhari/onebrc/internal/plan"
	"github.com/nbukhari/onebrc/internal/scan"
	"github.com/nbukhari/onebrc/internal/source"
	"github.com/nbukhari/onebrc/internal/stats"
	"github.com/nbukhari/onebrc/pkg/contract"
)

// Result is the merged key→statistics mapping.
type Result = agg.Result

// Errors returned by Process. Match them with errors.Is.
var (
	ErrIO               = contract.ErrIO
	ErrMalformedRecord  = contract.ErrMalformedRecord
	ErrPlannerInvariant = contract.ErrPlannerInvariant
	ErrSumOverflow      = contract.ErrSumOverflow
)

type (
	IOError               = contract.IOError
	MalformedRecordError  = contract.MalformedRecordError
	PlannerInvariantError = contract.PlannerInvariantError
	SumOverflowError      = contract.SumOverflowError
)

// Engine is the parallel memory-mapped aggregator.
type Engine struct {
	opts Options
}

// New returns an Engine; zero fields of opts take their defaults.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Process aggregates the file at path. Any I/O, parse or planning error, or a
// key whose sum leaves the int64 range, fails the whole call and no partial
// result is returned.
func (e *Engine) Process(path string) (*Result, error) {
	log := e.opts.Logger
	t0 := time.Now()

	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ranges, err := plan.Plan(src, e.opts.Workers, e.opts.MaxChunk)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	log.Printf("mapped %s: %d bytes, %d chunks, %d workers", path, src.Len(), len(ranges), e.opts.Workers)

	t1 := time.Now()
	parts := make([]*stats.Table, len(ranges))
	g, ctx := errgroup.WithContext(context.Background())
	// One scanner per chunk: the planner may have doubled the worker count.
	g.SetLimit(len(ranges))
	log.Printf("starting %d scanners", len(ranges))
	for i, r := range ranges {
		g.Go(func() error {
			t, err := scan.Scan(ctx, scan.Chunk{Index: i, Range: r, Data: src.Slice(r)})
			if err != nil {
				return err
			}
			parts[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	log.Printf("scanned %d chunks in %s", len(parts), time.Since(t1))

	t2 := time.Now()
	var res *Result
	if e.opts.TreeMerge {
		res = agg.MergeTree(parts)
	} else {
		res = agg.Merge(parts)
	}
	log.Printf("merged %d keys in %s (total %s)", res.Len(), time.Since(t2), time.Since(t0))
	if k, s, ok := res.Overflowed(); ok {
		return nil, fmt.Errorf("merge %s: %w", path, &contract.SumOverflowError{Key: k, Count: s.Count})
	}
	return res, nil
}

// Run processes path and writes the formatted result to w. Nothing is written
// when processing fails.
func (e *Engine) Run(path string, w io.Writer) error {
	res, err := e.Process(path)
	if err != nil {
		return err
	}
	return format.Write(w, res, e.opts.Order)
}

// Process aggregates path with default options.
func Process(path string) (*Result, error) {
	return New(Options{}).Process(path)
}

// Format renders r as {key=min/mean/max, ...}.
func Format(r *Result, order Order) string {
	return format.Format(r, order)
}
