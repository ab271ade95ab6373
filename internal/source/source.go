// Package source exposes an input file as one read-only byte region.
//
// On linux, darwin and freebsd the region is a shared read-only mapping
// and pages are faulted in on demand. Elsewhere the file is read once into
// a heap buffer of the file's size.
package source

import (
	"github.com/nbukhari/onebrc/pkg/contract"
)

// File is a read-only view over a whole file. It is safe for concurrent
// readers; nothing ever writes to it.
type File struct {
	path  string
	data  []byte
	close func() error
}

// Open maps path. A zero-length file yields an empty view.
func Open(path string) (*File, error) {
	return open(path)
}

// Path returns the path the view was opened from.
func (f *File) Path() string { return f.path }

// Len returns the file size in bytes.
func (f *File) Len() int { return len(f.data) }

// At returns the byte at absolute offset i.
func (f *File) At(i int) byte { return f.data[i] }

// Bytes returns the whole region. Callers must not modify it.
func (f *File) Bytes() []byte { return f.data }

// Slice returns the bytes of r.
func (f *File) Slice(r contract.ByteRange) []byte {
	return f.data[r.Start:r.End():r.End()]
}

// Close releases the mapping. The view must not be used afterwards.
func (f *File) Close() error {
	if f.close == nil {
		return nil
	}
	c := f.close
	f.close = nil
	f.data = nil
	if err := c(); err != nil {
		return &contract.IOError{Op: "close", Path: f.path, Err: err}
	}
	return nil
}
