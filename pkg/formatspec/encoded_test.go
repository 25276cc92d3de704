package formatspec

import (
	"io"
	"testing"

	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/scanin"
)

// overreadDecoder writes payload regardless of what it reads, reporting
// totalIn bytes consumed from the encoded stream — used to force the
// declared-size/actual-size mismatch in TestEncodedFormatSpecSizeMismatch.
type overreadDecoder struct {
	identity string
	payload  []byte
	totalIn  int64
}

func (d *overreadDecoder) Identity() string { return d.identity }

func (d *overreadDecoder) Decode(in scanin.Input, pos int64, w io.Writer) (int64, error) {
	if _, err := w.Write(d.payload); err != nil {
		return 0, err
	}
	return d.totalIn, nil
}

func TestEncodedFormatSpecStraightSliceNoDecoder(t *testing.T) {
	s := &EncodedFormatSpec{
		Name: "entry",
		Params: resultctx.Literal(DecodeParams{
			EncodedName: "entry",
			EncodedSize: 5,
			DecodedPath: "archive#entry",
		}),
		Cache: codec.NewMemCache(),
	}
	data := []byte("hello-trailing-bytes-not-consumed")
	res, consumed := decodeRoot(t, s, data)
	if consumed != 5 {
		t.Fatalf("expected 5 bytes consumed, got %d", consumed)
	}
	if res.Status != nil {
		t.Fatalf("expected no status on a clean straight-slice, got %+v", res.Status)
	}
	if len(res.Children) != 1 {
		t.Fatalf("expected one Input child, got %+v", res.Children)
	}
}

func TestEncodedFormatSpecDeclaredSizeExceedsInput(t *testing.T) {
	s := &EncodedFormatSpec{
		Name: "entry",
		Params: resultctx.Literal(DecodeParams{
			EncodedName: "entry",
			EncodedSize: 100,
			DecodedPath: "archive#entry",
		}),
		Cache: codec.NewMemCache(),
	}
	res, _ := decodeRoot(t, s, []byte("short"))
	if res.Status == nil || !res.Status.Fatal {
		t.Fatalf("expected a fatal status when declared size exceeds available input, got %+v", res.Status)
	}
}

// TestEncodedFormatSpecSizeMismatch is the S3 scenario: the declared encoded
// size (10) undershoots what the decoder actually consumed (12). Decode
// still succeeds; a non-fatal warning is attached instead of a hard error.
func TestEncodedFormatSpecSizeMismatch(t *testing.T) {
	dec := &overreadDecoder{identity: "stub", payload: []byte("decoded-body"), totalIn: 12}
	s := &EncodedFormatSpec{
		Name: "entry",
		Params: resultctx.Literal(DecodeParams{
			EncodedName: "entry",
			EncodedSize: 10,
			DecodedPath: "archive#entry",
			DecoderFactory: func(_ *resultctx.Context) (codec.Decoder, error) {
				return dec, nil
			},
		}),
		Cache: codec.NewMemCache(),
	}
	res, consumed := decodeRoot(t, s, make([]byte, 20))
	if consumed != 12 {
		t.Fatalf("expected consumed to follow the decoder's totalIn (12), got %d", consumed)
	}
	if res.Status == nil || res.Status.Fatal {
		t.Fatalf("expected a non-fatal warning status, got %+v", res.Status)
	}
}
