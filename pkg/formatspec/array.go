package formatspec

import (
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

// defaultMaxArrayElements bounds an ArraySpec with neither Count nor
// Sentinel set, or whose sentinel never matches against malformed input —
// the "bounded recursion, fail fast on overflow" rule for accidental
// cycles/runaway repetition.
const defaultMaxArrayElements = 1 << 20

// ArraySpec repeats Element either Count times (an expression typically
// reading a previously bound length attribute) or until Sentinel matches
// at the current position, whichever is configured.
type ArraySpec struct {
	Element Spec

	// Count, when non-nil, is evaluated once per iteration against the
	// enclosing context; decoding stops once the iteration index reaches
	// it.
	Count *resultctx.Expression[int]

	// Sentinel, when non-nil, is checked (via Matches, never decoded
	// itself) before each element; a match stops the array without
	// consuming those bytes as an element.
	Sentinel Spec

	// MaxElements caps iteration regardless of Count/Sentinel. Zero means
	// defaultMaxArrayElements.
	MaxElements int

	Name     string
	AsResult bool
	Kind     resulttree.ResultType
}

func (s *ArraySpec) maxElements() int {
	if s.MaxElements > 0 {
		return s.MaxElements
	}
	return defaultMaxArrayElements
}

// MatchSize is always 0: an array is decode-only look-ahead, per spec.md
// §4.1's "Specs that are variable-sized but need look-ahead declare
// matchSize==0."
func (s *ArraySpec) MatchSize() int { return 0 }

func (s *ArraySpec) Matches(buf []byte) bool { return true }

func (s *ArraySpec) IsFixedSize() bool { return false }

func (s *ArraySpec) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	if s.AsResult {
		b.SetTitle(s.Name)
	}
	cur := pos
	max := s.maxElements()
	for i := 0; i < max; i++ {
		if s.Count != nil {
			n, err := s.Count.Eval(b.Context())
			if err != nil {
				return cur - pos, fmt.Errorf("formatspec: array %s count: %w", s.Name, err)
			}
			if i >= n {
				break
			}
		}
		if s.Sentinel != nil {
			sz := s.Sentinel.MatchSize()
			if sz > 0 && cur+int64(sz) <= b.Input().Size() {
				buf, err := b.Input().CachedRead(cur, sz, b.Order())
				if err == nil && s.Sentinel.Matches(buf) {
					break
				}
			}
		}
		if cur >= b.Input().Size() {
			break
		}
		consumed, err := decodeChild(b, s.Element, cur)
		if err != nil {
			return cur - pos, fmt.Errorf("formatspec: array %s element %d: %w", s.Name, i, err)
		}
		if !s.Element.IsResult() {
			if err := b.AddSection(s.Element, cur, cur+consumed); err != nil {
				return cur - pos, err
			}
		}
		if consumed == 0 {
			break // a zero-width element with no Count/Sentinel bound would loop forever otherwise
		}
		cur += consumed
		if st := b.Status(); st != nil && st.Fatal {
			break
		}
	}
	if err := b.UpdateEnd(cur); err != nil {
		return cur - pos, err
	}
	return cur - pos, nil
}

// Render covers only elements that decoded inline (Element.IsResult() ==
// false); result-typed elements render via the normal child-result walk.
func (s *ArraySpec) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	for _, sec := range r.Sections {
		if sec.Start < start || sec.Start >= end {
			continue
		}
		spec, ok := sec.Spec.(render.SpecRenderer)
		if !ok {
			continue
		}
		if err := spec.Render(r, sec.Start, sec.End, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *ArraySpec) IsResult() bool { return s.AsResult }

func (s *ArraySpec) ResultType() resulttree.ResultType { return s.Kind }
