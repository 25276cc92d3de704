package formatspec

import (
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// StructSpec is a consecutive list of specs decoded in order (spec.md
// §4.1's "Composite: StructSpec").
type StructSpec struct {
	// Name titles the result this struct produces, when AsResult is set.
	Name string

	// AsResult marks this struct as itself opening a new child result
	// (e.g. a named repeated chunk inside an ArraySpec) rather than
	// flattening its fields into the parent's sections, as a struct used
	// only to group fields inline would.
	AsResult bool

	// Kind is the result type produced when AsResult is set. Defaults to
	// resulttree.Format.
	Kind resulttree.ResultType

	Children []Spec
}

// NewStructSpec creates an inline struct (AsResult=false) over children.
func NewStructSpec(children ...Spec) *StructSpec {
	return &StructSpec{Children: children}
}

// AsNamedResult marks s as producing its own named child result.
func (s *StructSpec) AsNamedResult(name string) *StructSpec {
	s.AsResult = true
	s.Name = name
	s.Kind = resulttree.Format
	return s
}

// MatchSize sums the prefix of fixed-size children's MatchSize, stopping
// after (and including) the first non-fixed-size child — spec.md §8
// property 2, load-bearing for probe-based format detection and never to
// be changed to sum every child.
func (s *StructSpec) MatchSize() int {
	total := 0
	for _, c := range s.Children {
		total += c.MatchSize()
		if !c.IsFixedSize() {
			break
		}
	}
	return total
}

// Matches checks every fixed-size prefix child against buf, stopping at
// the first non-fixed-size or MatchSize()==0 child. A struct with no
// checkable fixed-size prefix at all (its first child already has
// MatchSize()==0) does not match anything — it never got to verify a
// single byte, so claiming a match here would let any candidate spec
// whose first child is variable-size match every input at every
// position.
func (s *StructSpec) Matches(buf []byte) bool {
	matched := false
	offset := 0
	for _, c := range s.Children {
		sz := c.MatchSize()
		if sz == 0 {
			break
		}
		if offset+sz > len(buf) {
			return false
		}
		if !c.Matches(buf[offset : offset+sz]) {
			return false
		}
		matched = true
		offset += sz
		if !c.IsFixedSize() {
			break
		}
	}
	return matched
}

// IsFixedSize is true only when every child is fixed size; a struct with
// any variable-size child may consume more than MatchSize() reports.
func (s *StructSpec) IsFixedSize() bool {
	for _, c := range s.Children {
		if !c.IsFixedSize() {
			return false
		}
	}
	return true
}

// Decode iterates children in order: a result-producing child gets its own
// child builder (and a pushed context scope); any other child decodes
// directly into b and has its span recorded as a ResultSection. A fatal
// status halts the remaining children but the bytes already consumed are
// still returned.
func (s *StructSpec) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	if s.AsResult {
		b.SetTitle(s.Name)
	}
	cur := pos
	for _, child := range s.Children {
		consumed, err := decodeChild(b, child, cur)
		if err != nil {
			return cur - pos, fmt.Errorf("formatspec: struct %s: %w", s.Name, err)
		}
		if !child.IsResult() {
			if err := b.AddSection(child, cur, cur+consumed); err != nil {
				return cur - pos, err
			}
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

// Render iterates children's recorded ResultSections, invoking each
// section's spec. A child marked AsResult renders via the normal
// Result.Children walk instead (the render driver handles that), so
// Render here only covers the inline-section children.
func (s *StructSpec) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	for _, sec := range r.Sections {
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

func (s *StructSpec) IsResult() bool { return s.AsResult }

func (s *StructSpec) ResultType() resulttree.ResultType { return s.Kind }
