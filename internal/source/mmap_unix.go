//go:build linux || darwin || freebsd

package source

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/nbukhari/onebrc/pkg/contract"
)

func open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &contract.IOError{Op: "open", Path: path, Err: err}
	}
	// the mapping outlives the descriptor
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, &contract.IOError{Op: "stat", Path: path, Err: err}
	}
	size := fi.Size()
	if size == 0 {
		return &File{path: path}, nil
	}
	if size < 0 || size > math.MaxInt {
		return nil, &contract.IOError{Op: "mmap", Path: path, Err: fmt.Errorf("invalid file size %d", size)}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &contract.IOError{Op: "mmap", Path: path, Err: err}
	}
	// advisory only
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &File{
		path:  path,
		data:  data,
		close: func() error { return unix.Munmap(data) },
	}, nil
}
