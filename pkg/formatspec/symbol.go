package formatspec

import (
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// SymbolAttribute wraps a NumberAttribute, mapping its decoded value to a
// display name via Symbols. Unknown values still decode and bind — they
// just render under a fallback label.
type SymbolAttribute[T Number] struct {
	Number  *NumberAttribute[T]
	Symbols map[T]string
	Unknown string
}

// NewSymbolAttribute wraps num, rendering values found in symbols by name.
// It turns on num.Bind, since Render looks the decoded value up in the
// result context.
func NewSymbolAttribute[T Number](num *NumberAttribute[T], symbols map[T]string) *SymbolAttribute[T] {
	num.Bind = true
	return &SymbolAttribute[T]{Number: num, Symbols: symbols, Unknown: "unknown"}
}

func (s *SymbolAttribute[T]) MatchSize() int          { return s.Number.MatchSize() }
func (s *SymbolAttribute[T]) Matches(buf []byte) bool { return s.Number.Matches(buf) }
func (s *SymbolAttribute[T]) IsFixedSize() bool       { return true }

func (s *SymbolAttribute[T]) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	return s.Number.Decode(b, pos)
}

func (s *SymbolAttribute[T]) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	v, _ := s.Number.Value(r.Context)
	name, ok := s.Symbols[v]
	if !ok {
		name = s.Unknown
	}
	if err := out.WriteBeginMode(render.Value); err != nil {
		return err
	}
	if err := out.WriteText(render.Value, fmt.Sprintf("%s = %v (%s)", s.Number.Name, v, name)); err != nil {
		return err
	}
	if err := out.WriteEndMode(render.Value); err != nil {
		return err
	}
	return out.WriteBreak()
}

func (s *SymbolAttribute[T]) IsResult() bool                        { return false }
func (s *SymbolAttribute[T]) ResultType() resulttree.ResultType      { return resulttree.Format }
