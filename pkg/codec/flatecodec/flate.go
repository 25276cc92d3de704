// Package flatecodec implements codec.Decoder for raw DEFLATE streams
// (RFC 1951), the compression layer most containers the format catalog
// targets actually use (ZIP stored/deflated entries, PNG's zlib-wrapped
// IDAT). It is an external collaborator of pkg/formatspec's
// EncodedFormatSpec, never imported by the core itself.
package flatecodec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/binlens/binlens/pkg/scanin"
)

// Decoder streams a raw DEFLATE section through klauspost/compress/flate,
// which tracks exactly how many compressed bytes it consumed so
// EncodedFormatSpec can report an accurate span even when the encoded
// size wasn't declared up front.
type Decoder struct{}

// New creates a DEFLATE Decoder.
func New() *Decoder { return &Decoder{} }

func (d *Decoder) Identity() string { return "deflate" }

func (d *Decoder) Decode(in scanin.Input, pos int64, w io.Writer) (int64, error) {
	cr := &countingReader{in: in, pos: pos}
	fr := flate.NewReader(cr)
	defer fr.Close()

	if _, err := io.Copy(w, fr); err != nil {
		return cr.read, fmt.Errorf("flatecodec: inflate at %d: %w", pos, err)
	}
	return cr.read, nil
}

// countingReader adapts scanin.Input's random-access reads into an
// io.Reader and io.ByteReader, while tracking how many bytes flate
// actually pulled from the stream. Because it is a ByteReader, flate reads
// from it directly instead of through a read-ahead buffer.
type countingReader struct {
	in   scanin.Input
	pos  int64
	read int64
}

const countingReaderChunk = 4096

func (r *countingReader) Read(p []byte) (int, error) {
	remaining := r.in.Size() - r.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	n := int64(len(p))
	if n > remaining {
		n = remaining
	}
	if n > countingReaderChunk {
		n = countingReaderChunk
	}
	buf, err := r.in.CachedRead(r.pos, int(n), r.in.Order())
	if err != nil {
		return 0, fmt.Errorf("flatecodec: read at %d: %w", r.pos, err)
	}
	copy(p, buf)
	r.pos += int64(len(buf))
	r.read += int64(len(buf))
	return len(buf), nil
}

func (r *countingReader) ReadByte() (byte, error) {
	if r.pos >= r.in.Size() {
		return 0, io.EOF
	}
	buf, err := r.in.CachedRead(r.pos, 1, r.in.Order())
	if err != nil {
		return 0, fmt.Errorf("flatecodec: read at %d: %w", r.pos, err)
	}
	r.pos++
	r.read++
	return buf[0], nil
}
