package codec

import (
	"io"

	"github.com/binlens/binlens/pkg/scanin"
)

// Decoder streams decoded bytes from an encoded region of an Input. It is
// always an external collaborator (§6 of the decode contract) — the core
// decode driver only ever holds one behind this interface.
type Decoder interface {
	// Identity names this decoder for DecodeCache fingerprinting, e.g.
	// "deflate".
	Identity() string

	// Decode reads the encoded stream starting at pos in in and writes
	// the decoded bytes to w, returning the number of encoded
	// (compressed) bytes actually consumed from in.
	Decode(in scanin.Input, pos int64, w io.Writer) (totalIn int64, err error)
}

// DecodeResult is what a DecodeCache produces for one encoded region:
// the derived Input over the decoded bytes, plus how many encoded bytes
// the decoder consumed from the parent (EncodedFormatSpec needs this to
// report how far it advanced in the parent's own byte range, independent
// of the decoded Input's size).
type DecodeResult struct {
	Input   scanin.Input
	TotalIn int64
}

// DecodeCache produces a DecodeResult over the bytes a Decoder emits,
// keyed by a fingerprint of (parent.Path(), position, decoder.Identity()).
// Implementations must guarantee at most one concurrent decode per
// fingerprint and must be idempotent: calling DecodeInput again with the
// same fingerprint, even after the first decode finished, returns an
// equivalent result without re-running the decoder (required for
// replaying a render after the original decode).
type DecodeCache interface {
	DecodeInput(parent scanin.Input, position int64, decoder Decoder, decodedPath string) (*DecodeResult, error)
}
