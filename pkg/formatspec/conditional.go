package formatspec

import (
	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

// ConditionalSpec decodes Then when Predicate evaluates true against the
// enclosing context, Else otherwise (Else may be nil, meaning "decode
// nothing"). MatchSize is always 0: the choice depends on previously
// bound context values, not on the bytes at the candidate position, so
// this spec never participates in prefix matching.
//
// Same constraint as UnionSpec's alternatives: a composite, inline branch
// must be wrapped with AsNamedResult for Render to re-derive it correctly.
type ConditionalSpec struct {
	Predicate func(ctx *resultctx.Context) (bool, error)
	Then      Spec
	Else      Spec
}

func (c *ConditionalSpec) MatchSize() int    { return 0 }
func (c *ConditionalSpec) Matches([]byte) bool { return true }
func (c *ConditionalSpec) IsFixedSize() bool { return false }

func (c *ConditionalSpec) branch(ctx *resultctx.Context) (Spec, error) {
	ok, err := c.Predicate(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return c.Then, nil
	}
	return c.Else, nil
}

func (c *ConditionalSpec) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	chosen, err := c.branch(b.Context())
	if err != nil {
		return 0, err
	}
	if chosen == nil {
		return 0, nil
	}
	return decodeChild(b, chosen, pos)
}

func (c *ConditionalSpec) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	chosen, err := c.branch(r.Context)
	if err != nil {
		return err
	}
	if chosen == nil || chosen.IsResult() {
		return nil
	}
	return chosen.Render(r, start, end, out)
}

func (c *ConditionalSpec) IsResult() bool { return false }

func (c *ConditionalSpec) ResultType() resulttree.ResultType { return resulttree.Format }
