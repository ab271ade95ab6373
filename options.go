package onebrc

import (
	"io"
	"log"
	"runtime"

	"github.com/nbukhari/onebrc/internal/format"
	"github.com/nbukhari/onebrc/internal/plan"
)

// Order re-exports the output key orders.
type Order = format.Order

const (
	Sorted    = format.Sorted
	Encounter = format.Encounter
)

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Workers is the number of concurrent scanners and the target chunk
	// count. Defaults to runtime.GOMAXPROCS(0).
	Workers int
	// MaxChunk caps a chunk's length; the chunk count doubles until it fits.
	// Defaults to plan.DefaultMaxChunk.
	MaxChunk int
	// Order is the key order used by Run.
	Order Order
	// TreeMerge merges partials pairwise in parallel instead of a sequential fold.
	TreeMerge bool
	// Logger gets one line per stage. Defaults to discarding.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxChunk <= 0 {
		o.MaxChunk = plan.DefaultMaxChunk
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o
}
