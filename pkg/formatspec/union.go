package formatspec

import (
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// UnionSpec decodes the first alternative whose Matches succeeds against a
// buffer read at the candidate position (spec.md §4.1's "first-match among
// alternatives, via matches").
//
// An alternative that is itself a composite, inline (non-AsResult)
// StructSpec or ArraySpec must not be used directly here: Render can only
// safely re-derive "which alternative decoded" for an alternative that is
// either atomic (an Attribute) or itself result-producing. Wrap a
// composite alternative with AsNamedResult if it needs struct/array shape.
type UnionSpec struct {
	Name         string
	Alternatives []Spec
}

func (u *UnionSpec) MatchSize() int {
	max := 0
	for _, alt := range u.Alternatives {
		if sz := alt.MatchSize(); sz > max {
			max = sz
		}
	}
	return max
}

func (u *UnionSpec) Matches(buf []byte) bool {
	_, ok := u.pick(buf)
	return ok
}

// IsFixedSize is true only when every alternative is fixed size and they
// all agree on exactly one size — otherwise a successful decode could
// consume more than MatchSize() reports.
func (u *UnionSpec) IsFixedSize() bool {
	if len(u.Alternatives) == 0 {
		return false
	}
	size := u.Alternatives[0].MatchSize()
	for _, alt := range u.Alternatives {
		if !alt.IsFixedSize() || alt.MatchSize() != size {
			return false
		}
	}
	return true
}

func (u *UnionSpec) pick(buf []byte) (Spec, bool) {
	for _, alt := range u.Alternatives {
		sz := alt.MatchSize()
		if sz > len(buf) {
			continue
		}
		if alt.Matches(buf[:sz]) {
			return alt, true
		}
	}
	return nil, false
}

func (u *UnionSpec) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	size := u.MatchSize()
	if avail := b.Input().Size() - pos; avail >= 0 && int64(size) > avail {
		size = int(avail)
	}
	buf, err := b.Input().CachedRead(pos, size, b.Order())
	if err != nil {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: short read", u.Name), err))
		return 0, nil
	}
	chosen, ok := u.pick(buf)
	if !ok {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: no alternative matched", u.Name), nil))
		return 0, nil
	}
	return decodeChild(b, chosen, pos)
}

// Render re-derives the chosen alternative from the decoded bytes and
// delegates to it. If the chosen alternative is itself result-producing,
// it already rendered via the normal child-result walk and Render is a
// no-op here.
func (u *UnionSpec) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	size := u.MatchSize()
	if avail := r.Input.Size() - start; avail >= 0 && int64(size) > avail {
		size = int(avail)
	}
	buf, err := r.Input.CachedRead(start, size, r.Order)
	if err != nil {
		return err
	}
	chosen, ok := u.pick(buf)
	if !ok || chosen.IsResult() {
		return nil
	}
	return chosen.Render(r, start, end, out)
}

func (u *UnionSpec) IsResult() bool { return false }

func (u *UnionSpec) ResultType() resulttree.ResultType { return resulttree.Format }
