// Package format renders a merged result as {key=min/mean/max, ...}.
package format

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/nbukhari/onebrc/internal/agg"
)

// Order selects the key order of the output.
type Order int

const (
	// Sorted orders keys byte-wise ascending.
	Sorted Order = iota
	// Encounter keeps the order keys were first seen: chunk order, then
	// position within the chunk. Stable for a fixed worker count only.
	Encounter
)

func (o Order) String() string {
	switch o {
	case Encounter:
		return "encounter"
	default:
		return "sorted"
	}
}

// ParseOrder maps "sorted" and "encounter" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sorted":
		return Sorted, nil
	case "encounter":
		return Encounter, nil
	default:
		return Sorted, fmt.Errorf("unknown order %q (want sorted or encounter)", s)
	}
}

// Format renders r.
func Format(r *agg.Result, order Order) string {
	var b strings.Builder
	b.Grow(r.Len() * 32)
	render(&b, r, order)
	return b.String()
}

// Write renders r to w without a trailing newline.
func Write(w io.Writer, r *agg.Result, order Order) error {
	bw := bufio.NewWriter(w)
	render(bw, r, order)
	return bw.Flush()
}

type byteWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
}

func render(w byteWriter, r *agg.Result, order Order) {
	keys := r.Keys()
	if order == Sorted {
		keys = slices.Clone(keys)
		slices.Sort(keys)
	}

	var num [24]byte
	w.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			w.WriteString(", ")
		}
		s, _ := r.Get(k)
		w.WriteString(k)
		w.WriteByte('=')
		w.Write(AppendTenths(num[:0], s.Min))
		w.WriteByte('/')
		w.Write(AppendTenths(num[:0], s.MeanTenths()))
		w.WriteByte('/')
		w.Write(AppendTenths(num[:0], s.Max))
	}
	w.WriteByte('}')
}

// AppendTenths appends v/10 with exactly one fractional digit: -5 → "-0.5".
func AppendTenths(dst []byte, v int64) []byte {
	u := uint64(v)
	if v < 0 {
		dst = append(dst, '-')
		u = uint64(-v)
	}
	dst = strconv.AppendUint(dst, u/10, 10)
	return append(dst, '.', byte('0'+u%10))
}

// Tenths renders v/10 with exactly one fractional digit.
func Tenths(v int64) string { return string(AppendTenths(nil, v)) }
