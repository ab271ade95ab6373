package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrIO: the input could not be opened, stat'ed or mapped.
	ErrIO = errors.New("io error")
	// ErrMalformedRecord: a record without a separator or with a bad value.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrPlannerInvariant: planned chunks are not adjacent or do not cover the input.
	ErrPlannerInvariant = errors.New("planner invariant violation")
	// ErrSumOverflow: a key's running sum left the int64 range.
	ErrSumOverflow = errors.New("sum overflow")

	// ErrNoSeparator and ErrBadValue are the reasons carried by MalformedRecordError.
	ErrNoSeparator = errors.New("missing field separator")
	ErrBadValue    = errors.New("value is not a decimal with at most one fractional digit")
)

// IOError wraps a filesystem or mapping failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// maxRecordEcho bounds how much of the offending record is kept for diagnostics.
const maxRecordEcho = 64

// MalformedRecordError locates a record the scanner could not parse.
type MalformedRecordError struct {
	Chunk  int    // index of the chunk being scanned
	Offset int    // absolute offset of the record start
	Record string // record text, truncated
	Reason error  // ErrNoSeparator or ErrBadValue
}

// NewMalformedRecord copies at most maxRecordEcho bytes of rec.
func NewMalformedRecord(chunk, offset int, rec []byte, reason error) *MalformedRecordError {
	if len(rec) > maxRecordEcho {
		rec = rec[:maxRecordEcho]
	}
	return &MalformedRecordError{Chunk: chunk, Offset: offset, Record: string(rec), Reason: reason}
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at offset %d (chunk %d): %v: %q", e.Offset, e.Chunk, e.Reason, e.Record)
}

func (e *MalformedRecordError) Unwrap() error { return e.Reason }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// PlannerInvariantError reports which planned range broke adjacency or coverage.
type PlannerInvariantError struct {
	Index  int
	Detail string
}

func (e *PlannerInvariantError) Error() string {
	return fmt.Sprintf("planner invariant violation at range %d: %s", e.Index, e.Detail)
}

func (e *PlannerInvariantError) Is(target error) bool { return target == ErrPlannerInvariant }

// SumOverflowError names the key whose sum could not be represented.
type SumOverflowError struct {
	Key   string
	Count int64
}

func (e *SumOverflowError) Error() string {
	return fmt.Sprintf("sum overflow for key %q after %d values", e.Key, e.Count)
}

func (e *SumOverflowError) Is(target error) bool { return target == ErrSumOverflow }
