package formatspec

import (
	"bytes"
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// MagicBytes matches a fixed, arbitrary-length literal byte sequence — for
// magics that aren't naturally one of NumberAttribute's power-of-two
// widths, e.g. a 3-byte magic or a YAML-declared hex literal of whatever
// length a format author wrote.
type MagicBytes struct {
	Name    string
	Literal []byte
}

// NewMagicBytes creates a MagicBytes spec requiring literal at the current
// position.
func NewMagicBytes(name string, literal []byte) *MagicBytes {
	return &MagicBytes{Name: name, Literal: literal}
}

func (m *MagicBytes) MatchSize() int          { return len(m.Literal) }
func (m *MagicBytes) Matches(buf []byte) bool { return bytes.Equal(buf, m.Literal) }
func (m *MagicBytes) IsFixedSize() bool       { return true }

func (m *MagicBytes) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	size := len(m.Literal)
	buf, err := b.Input().CachedRead(pos, size, b.Order())
	if err != nil {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: short read at %d", m.Name, pos), err))
		return 0, nil
	}
	if !bytes.Equal(buf, m.Literal) {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: expected % x, got % x", m.Name, m.Literal, buf), nil))
		return int64(size), nil
	}
	return int64(size), nil
}

func (m *MagicBytes) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	if err := out.WriteBeginMode(render.Label); err != nil {
		return err
	}
	if err := out.WriteText(render.Label, fmt.Sprintf("%s = % x", m.Name, m.Literal)); err != nil {
		return err
	}
	if err := out.WriteEndMode(render.Label); err != nil {
		return err
	}
	return out.WriteBreak()
}

func (m *MagicBytes) IsResult() bool                        { return false }
func (m *MagicBytes) ResultType() resulttree.ResultType { return resulttree.Format }
