//go:build !(linux || darwin || freebsd)

package source

import (
	"golang.org/x/exp/mmap"

	"github.com/nbukhari/onebrc/pkg/contract"
)

// open falls back to the portable mapped reader and copies the region once.
// The whole file is therefore resident on the heap on these platforms, so
// inputs larger than available memory can only be processed where the
// unix mapping is used.
func open(path string) (*File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, &contract.IOError{Op: "mmap", Path: path, Err: err}
	}
	defer r.Close()

	if r.Len() == 0 {
		return &File{path: path}, nil
	}
	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, &contract.IOError{Op: "read", Path: path, Err: err}
	}
	return &File{path: path, data: data}, nil
}
