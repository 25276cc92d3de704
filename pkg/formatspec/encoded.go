package formatspec

import (
	"fmt"

	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
	"github.com/binlens/binlens/pkg/scanin"
)

// DecodeParams names one encoded section: its declared name, its declared
// size (-1 if unknown ahead of decode), a factory for the Decoder to run
// (nil meaning "no decoder, just slice the bytes straight through"), and
// the path the produced derived Input should carry.
type DecodeParams struct {
	EncodedName    string
	EncodedSize    int64
	DecoderFactory func(ctx *resultctx.Context) (codec.Decoder, error)
	DecodedPath    string
}

// EncodedFormatSpec always produces an ENCODED_INPUT result (spec.md
// §4.1's "Encoded section"). Params is evaluated lazily against the
// decoding context so an archive entry's encoded size — often a sibling
// bound attribute — can be read at decode time.
type EncodedFormatSpec struct {
	Name   string
	Params resultctx.Expression[DecodeParams]
	Cache  codec.DecodeCache
}

func (e *EncodedFormatSpec) MatchSize() int    { return 0 }
func (e *EncodedFormatSpec) Matches([]byte) bool { return true }
func (e *EncodedFormatSpec) IsFixedSize() bool { return false }

func (e *EncodedFormatSpec) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	params, err := e.Params.Eval(b.Context())
	if err != nil {
		return 0, fmt.Errorf("formatspec: %s decode params: %w", e.Name, err)
	}

	var decodedInput scanin.Input
	var totalIn int64

	if params.DecoderFactory != nil {
		decoder, err := params.DecoderFactory(b.Context())
		if err != nil {
			return 0, fmt.Errorf("formatspec: %s decoder: %w", e.Name, err)
		}
		result, err := e.Cache.DecodeInput(b.Input(), pos, decoder, params.DecodedPath)
		if err != nil {
			return 0, fmt.Errorf("formatspec: %s: %w", e.Name, err)
		}
		decodedInput = result.Input
		totalIn = result.TotalIn
	} else {
		if params.EncodedSize < 0 {
			b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: no decoder and unknown encoded size", e.Name), nil))
			return 0, nil
		}
		sliced, err := b.Input().Slice(pos, pos+params.EncodedSize, params.DecodedPath)
		if err != nil {
			b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: declared size %d exceeds available input", e.Name, params.EncodedSize), err))
			return 0, nil
		}
		decodedInput = sliced
		totalIn = params.EncodedSize
	}

	consumed := totalIn
	if params.EncodedSize >= 0 {
		if totalIn > params.EncodedSize {
			b.SetStatus(resulttree.Warning(
				fmt.Sprintf("%s: declared encoded size %d but consumed %d", e.Name, params.EncodedSize, totalIn), nil))
		}
		if params.EncodedSize > consumed {
			consumed = params.EncodedSize
		}
	}

	if _, err := b.AddInput(decodedInput); err != nil {
		return 0, fmt.Errorf("formatspec: %s: %w", e.Name, err)
	}
	return consumed, nil
}

func (e *EncodedFormatSpec) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	if err := out.WriteBeginMode(render.Label); err != nil {
		return err
	}
	title := r.Title
	if title == "" {
		title = e.Name
	}
	if err := out.WriteText(render.Label, fmt.Sprintf("%s (%d bytes encoded)", title, end-start)); err != nil {
		return err
	}
	if err := out.WriteEndMode(render.Label); err != nil {
		return err
	}
	return out.WriteBreak()
}

func (e *EncodedFormatSpec) IsResult() bool { return true }

func (e *EncodedFormatSpec) ResultType() resulttree.ResultType { return resulttree.EncodedInput }
