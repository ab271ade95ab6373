package onebrc

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Solution is an aggregation strategy selectable by name.
type Solution interface {
	Process(path string) (*Result, error)
	Run(path string, w io.Writer) error
}

// Factory builds a Solution from options.
type Factory func(opts Options) Solution

// Solutions is the name→factory registry used by the dispatcher.
var Solutions = map[string]Factory{
	// parallel: mapped file, one scanner per chunk
	"parallel": func(opts Options) Solution { return New(opts) },
	// single: same engine on one chunk, the correctness baseline
	"single": func(opts Options) Solution {
		opts.Workers = 1
		opts.TreeMerge = false
		return New(opts)
	},
}

// Names lists the registered solutions, sorted.
func Names() []string {
	names := make([]string, 0, len(Solutions))
	for n := range Solutions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup builds the named solution.
func Lookup(name string, opts Options) (Solution, error) {
	f, ok := Solutions[name]
	if !ok {
		return nil, fmt.Errorf("solution not found for type %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f(opts), nil
}
