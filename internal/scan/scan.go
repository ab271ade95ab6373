// Package scan folds the records of one chunk into a partial result.
package scan

import (
	"bytes"
	"context"

	"github.com/nbukhari/onebrc/internal/stats"
	"github.com/nbukhari/onebrc/pkg/contract"
)

// TableSize is the initial key capacity of a partial result.
const TableSize = 10_000

// ctxEvery is how many records are scanned between cancellation checks.
const ctxEvery = 1 << 16

// Chunk is one planned range together with the mapped bytes it covers.
type Chunk struct {
	Index int
	Range contract.ByteRange
	Data  []byte // len(Data) == Range.Len
}

// Scan parses every record of c once, left to right.
//
// The key is everything before the last ';' of the line, the value everything
// after it. A '\r' right before the newline is ignored. The first malformed
// record aborts the scan with a *contract.MalformedRecordError. Scan also stops
// with ctx.Err() once ctx is done.
func Scan(ctx context.Context, c Chunk) (*stats.Table, error) {
	t := stats.NewTable(TableSize)
	buf := c.Data
	pos, n := 0, 0
	for pos < len(buf) {
		n++
		if n%ctxEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line, next := buf[pos:], len(buf)
		if nl := bytes.IndexByte(line, contract.Newline); nl >= 0 {
			line, next = line[:nl], pos+nl+1
		}
		if k := len(line) - 1; k >= 0 && line[k] == '\r' {
			line = line[:k]
		}

		sep := bytes.LastIndexByte(line, contract.Separator)
		if sep < 0 {
			return nil, contract.NewMalformedRecord(c.Index, c.Range.Start+pos, line, contract.ErrNoSeparator)
		}
		v, ok := ParseTenths(line[sep+1:])
		if !ok {
			return nil, contract.NewMalformedRecord(c.Index, c.Range.Start+pos, line, contract.ErrBadValue)
		}
		t.Add(line[:sep], v)
		pos = next
	}
	return t, nil
}
