package scanin

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrShortRead is returned by CachedRead when fewer than length bytes are
// available at the requested position.
var ErrShortRead = errors.New("scanin: short read")

// Input is a read-only, random-access view over a byte source. A format
// spec never reads anything else; an Input is the only thing specDecode and
// specRender are allowed to see.
type Input interface {
	// Size returns the total number of bytes in this input.
	Size() int64

	// Path identifies this input for diagnostics and for naming decoded
	// children (e.g. "archive.zip#0x40" or "archive.zip!README.txt").
	Path() string

	// Order returns the byte order new reads default to when no explicit
	// order is requested.
	Order() binary.ByteOrder

	// CachedRead returns exactly length bytes starting at pos. When order
	// differs from Order() the returned bytes are reversed, so decoding
	// them with order yields the value the input's own order would give;
	// callers that apply a field's order themselves read with Order().
	// Returns ErrShortRead if the input ends before pos+length.
	CachedRead(pos int64, length int, order binary.ByteOrder) ([]byte, error)

	// Slice returns a derived Input over [start,end) of this input, named
	// path. end must not exceed Size().
	Slice(start, end int64, path string) (Input, error)
}

// FileInput is an Input backed by an io.ReaderAt, typically an *os.File.
// Reads are served from a small set of fixed-size pages so that repeated
// reads of the same region (matches, then decode, then render) don't
// repeatedly hit the underlying reader.
type FileInput struct {
	r        io.ReaderAt
	size     int64
	path     string
	order    binary.ByteOrder
	pageSize int64
	pages    map[int64][]byte
}

const defaultPageSize = 4096

// NewFileInput creates a FileInput over r, which must contain exactly size
// bytes starting at offset 0.
func NewFileInput(r io.ReaderAt, size int64, path string, order binary.ByteOrder) *FileInput {
	return &FileInput{
		r:        r,
		size:     size,
		path:     path,
		order:    order,
		pageSize: defaultPageSize,
		pages:    make(map[int64][]byte),
	}
}

func (f *FileInput) Size() int64             { return f.size }
func (f *FileInput) Path() string            { return f.path }
func (f *FileInput) Order() binary.ByteOrder { return f.order }

func (f *FileInput) CachedRead(pos int64, length int, order binary.ByteOrder) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("scanin: negative read length %d", length)
	}
	if pos < 0 || pos+int64(length) > f.size {
		return nil, fmt.Errorf("%w: %s pos=%d length=%d size=%d", ErrShortRead, f.path, pos, length, f.size)
	}
	out := make([]byte, length)
	remaining := out
	cur := pos
	for len(remaining) > 0 {
		pageStart := (cur / f.pageSize) * f.pageSize
		page, err := f.page(pageStart)
		if err != nil {
			return nil, err
		}
		offsetInPage := int(cur - pageStart)
		n := copy(remaining, page[offsetInPage:])
		remaining = remaining[n:]
		cur += int64(n)
	}
	if order != nil && isReversed(order, f.order) {
		reverseInPlace(out)
	}
	return out, nil
}

// isReversed reports whether a read requested in order a needs its bytes
// flipped relative to the input's native order b.
func isReversed(a, b binary.ByteOrder) bool {
	return a != b
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func (f *FileInput) page(start int64) ([]byte, error) {
	if p, ok := f.pages[start]; ok {
		return p, nil
	}
	n := f.pageSize
	if start+n > f.size {
		n = f.size - start
	}
	buf := make([]byte, n)
	if _, err := f.r.ReadAt(buf, start); err != nil && err != io.EOF {
		return nil, fmt.Errorf("scanin: read %s at %d: %w", f.path, start, err)
	}
	f.pages[start] = buf
	return buf, nil
}

func (f *FileInput) Slice(start, end int64, path string) (Input, error) {
	if start < 0 || end > f.size || start > end {
		return nil, fmt.Errorf("scanin: invalid slice [%d,%d) of %s (size %d)", start, end, f.path, f.size)
	}
	return &sliceInput{parent: f, start: start, end: end, path: path}, nil
}

// BufferInput is an Input over an in-memory byte slice. Used for decoded
// (post-codec) children and throughout the test suite.
type BufferInput struct {
	data  []byte
	path  string
	order binary.ByteOrder
}

// NewBufferInput wraps data as an Input named path.
func NewBufferInput(data []byte, path string, order binary.ByteOrder) *BufferInput {
	return &BufferInput{data: data, path: path, order: order}
}

func (b *BufferInput) Size() int64             { return int64(len(b.data)) }
func (b *BufferInput) Path() string            { return b.path }
func (b *BufferInput) Order() binary.ByteOrder { return b.order }

func (b *BufferInput) CachedRead(pos int64, length int, order binary.ByteOrder) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("scanin: negative read length %d", length)
	}
	if pos < 0 || pos+int64(length) > int64(len(b.data)) {
		return nil, fmt.Errorf("%w: %s pos=%d length=%d size=%d", ErrShortRead, b.path, pos, length, len(b.data))
	}
	out := make([]byte, length)
	copy(out, b.data[pos:pos+int64(length)])
	if order != nil && isReversed(order, b.order) {
		reverseInPlace(out)
	}
	return out, nil
}

func (b *BufferInput) Slice(start, end int64, path string) (Input, error) {
	if start < 0 || end > int64(len(b.data)) || start > end {
		return nil, fmt.Errorf("scanin: invalid slice [%d,%d) of %s (size %d)", start, end, b.path, len(b.data))
	}
	return &sliceInput{parent: b, start: start, end: end, path: path}, nil
}

// sliceInput is a derived, read-only window over a parent Input.
type sliceInput struct {
	parent Input
	start  int64
	end    int64
	path   string
}

func (s *sliceInput) Size() int64             { return s.end - s.start }
func (s *sliceInput) Path() string            { return s.path }
func (s *sliceInput) Order() binary.ByteOrder { return s.parent.Order() }

func (s *sliceInput) CachedRead(pos int64, length int, order binary.ByteOrder) ([]byte, error) {
	if pos < 0 || pos+int64(length) > s.Size() {
		return nil, fmt.Errorf("%w: %s pos=%d length=%d size=%d", ErrShortRead, s.path, pos, length, s.Size())
	}
	return s.parent.CachedRead(s.start+pos, length, order)
}

func (s *sliceInput) Slice(start, end int64, path string) (Input, error) {
	if start < 0 || end > s.Size() || start > end {
		return nil, fmt.Errorf("scanin: invalid slice [%d,%d) of %s (size %d)", start, end, s.path, s.Size())
	}
	return s.parent.Slice(s.start+start, s.start+end, path)
}
