package formatspec

import "github.com/binlens/binlens/pkg/resulttree"

// decodeChild is the branch every composite spec (StructSpec, ArraySpec,
// UnionSpec, ConditionalSpec) needs for a nested child spec: a
// result-producing child gets its own child builder and a freshly pushed
// context scope (spec.md §4.3 step 3); anything else decodes straight
// into b. It does not record a ResultSection for the non-result case —
// callers that know the exact span up front (StructSpec, ArraySpec) add
// one themselves; callers that are themselves a single inline field
// (UnionSpec, ConditionalSpec) leave that to whatever encloses them.
func decodeChild(b *resulttree.Builder, child Spec, pos int64) (int64, error) {
	if !child.IsResult() {
		return child.Decode(b, pos)
	}
	childCtx := b.Context().Push()
	childBuilder, err := b.AddResult(child, child.ResultType(), pos, b.Order(), childCtx)
	if err != nil {
		return 0, err
	}
	childBuilder.SetRenderable(child)
	consumed, err := child.Decode(childBuilder, pos)
	if err != nil {
		return 0, err
	}
	if err := childBuilder.UpdateEnd(pos + consumed); err != nil {
		return 0, err
	}
	if st := childBuilder.Status(); st != nil {
		b.SetStatus(st)
	}
	return consumed, nil
}
