package formatspec

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

// CBORAttribute decodes one CBOR data item at the current position —
// many containers (COSE, WebAuthn attestation objects, dbus payloads)
// embed raw CBOR items inline rather than as a whole encoded section.
// It has no fixed MatchSize: the item's length is only known once
// decoded.
type CBORAttribute struct {
	Name string
	Bind bool
}

// NewCBORAttribute creates an unbound CBORAttribute named name.
func NewCBORAttribute(name string) *CBORAttribute {
	return &CBORAttribute{Name: name}
}

// WithBind publishes the decoded value into the enclosing ResultContext.
func (a *CBORAttribute) WithBind() *CBORAttribute {
	a.Bind = true
	return a
}

func (a *CBORAttribute) MatchSize() int      { return 0 }
func (a *CBORAttribute) Matches([]byte) bool { return true }
func (a *CBORAttribute) IsFixedSize() bool    { return false }

func (a *CBORAttribute) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	in := b.Input()
	// CBOR items are self-delimiting but cbor.Decoder wants an io.Reader;
	// probe growing windows since scanin.Input has no streaming reader.
	const probeChunk = 256
	remaining := in.Size() - pos
	var lastErr error
	for size := probeChunk; ; size += probeChunk {
		atEnd := int64(size) >= remaining
		if atEnd {
			size = int(remaining)
		}
		buf, err := in.CachedRead(pos, size, b.Order())
		if err != nil {
			break
		}
		var v any
		rest, decErr := decodeOneCBORItem(buf, &v)
		if decErr == nil {
			if a.Bind {
				b.Context().Set(a, v)
			}
			return int64(len(buf) - len(rest)), nil
		}
		lastErr = decErr
		if atEnd {
			break
		}
	}
	b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: no valid CBOR item at %d", a.Name, pos), lastErr))
	return 0, nil
}

// decodeOneCBORItem decodes exactly one CBOR data item from the front of
// buf into v, returning the unconsumed remainder.
func decodeOneCBORItem(buf []byte, v any) ([]byte, error) {
	dec := cbor.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(v); err != nil {
		return nil, err
	}
	return buf[dec.NumBytesRead():], nil
}

func (a *CBORAttribute) Value(ctx *resultctx.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	return ctx.Get(a)
}

func (a *CBORAttribute) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	v, _ := a.Value(r.Context)
	if err := out.WriteBeginMode(render.Value); err != nil {
		return err
	}
	if err := out.WriteText(render.Value, fmt.Sprintf("%s = %v", a.Name, v)); err != nil {
		return err
	}
	if err := out.WriteEndMode(render.Value); err != nil {
		return err
	}
	return out.WriteBreak()
}

func (a *CBORAttribute) IsResult() bool { return false }

func (a *CBORAttribute) ResultType() resulttree.ResultType { return resulttree.Format }
