package contract

// ByteRange is a [Start, Start+Len) window over the input.
type ByteRange struct {
	Start int
	Len   int
}

// End returns the offset just past the range.
func (r ByteRange) End() int { return r.Start + r.Len }

// Bytes is random access to a read-only byte region.
// golang.org/x/exp/mmap.ReaderAt satisfies it as well.
type Bytes interface {
	Len() int
	At(i int) byte
}

const (
	// Separator splits the key from the value in a record.
	Separator = ';'
	// Newline terminates a record.
	Newline = '\n'
)
