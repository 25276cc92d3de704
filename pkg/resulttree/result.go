package resulttree

import (
	"encoding/binary"
	"fmt"

	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/scanin"
)

// Result is an immutable, decoded region in the output tree. Once frozen
// by Builder.ToResult it never changes; it may be rendered any number of
// times.
type Result struct {
	Parent *Result
	Type   ResultType

	// Spec is the format spec that produced this region, as stored by the
	// caller (see ResultSection's doc comment for why this is `any`).
	Spec any

	Order binary.ByteOrder

	Start int64
	End   int64

	Title  string
	Status *DecodeStatus

	// Renderable is the spec whose Render method re-renders this result.
	Renderable any

	// Context is the scope bound while this result decoded. Rendering
	// re-enters it.
	Context *resultctx.Context

	Children []*Result
	Sections []ResultSection

	// Input is the Input this region's bytes are read from: the enclosing
	// input for Format and EncodedInput results, the nested input itself
	// when Type == Input.
	Input scanin.Input
}

// Validate checks the §3/§8 span invariants on r and every descendant:
// Start <= End, End >= max(child.End), and children strictly increasing
// by Start.
func (r *Result) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("resulttree: result %q has start %d > end %d", r.Title, r.Start, r.End)
	}
	prevStart := int64(-1)
	first := true
	maxChildEnd := r.Start
	for _, c := range r.Children {
		if !first && c.Start <= prevStart {
			return fmt.Errorf("resulttree: children of %q not strictly increasing at start %d", r.Title, c.Start)
		}
		first = false
		prevStart = c.Start
		if c.Start < r.Start {
			return fmt.Errorf("resulttree: child start %d before parent start %d", c.Start, r.Start)
		}
		if c.End > maxChildEnd {
			maxChildEnd = c.End
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if r.End < maxChildEnd {
		return fmt.Errorf("resulttree: result %q end %d less than max child end %d", r.Title, r.End, maxChildEnd)
	}
	return nil
}

// Equal reports whether r and other are structurally equal — same shape,
// spans, titles, and statuses — used to verify ToResult's idempotence.
// It deliberately does not compare Context contents (contexts are compared
// by the caller when that matters).
func (r *Result) Equal(other *Result) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Type != other.Type || r.Start != other.Start || r.End != other.End || r.Title != other.Title {
		return false
	}
	if (r.Status == nil) != (other.Status == nil) {
		return false
	}
	if r.Status != nil && (r.Status.Fatal != other.Status.Fatal || r.Status.Message != other.Status.Message) {
		return false
	}
	if len(r.Children) != len(other.Children) || len(r.Sections) != len(other.Sections) {
		return false
	}
	for i := range r.Sections {
		if r.Sections[i] != other.Sections[i] {
			return false
		}
	}
	for i := range r.Children {
		if !r.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
