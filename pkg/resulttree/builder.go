package resulttree

import (
	"encoding/binary"
	"fmt"

	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/scanin"
)

// ResultType classifies what a Result (or the Builder that produced it)
// represents.
type ResultType int

const (
	// Format is a decoded, named region of a recognized format.
	Format ResultType = iota
	// EncodedInput is a region whose bytes were produced by a codec from
	// a compressed/encoded source region.
	EncodedInput
	// Input is a raw, unstructured input made available for further
	// (external) recursive scanning.
	Input
)

func (t ResultType) String() string {
	switch t {
	case Format:
		return "FORMAT"
	case EncodedInput:
		return "ENCODED_INPUT"
	case Input:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}

// Builder is the mutable accumulator populated while a spec decodes. It is
// never exposed to a renderer — only its frozen counterpart, Result, is.
type Builder struct {
	parent *Builder

	spec  any
	typ   ResultType
	order binary.ByteOrder

	start int64
	end   int64

	title      string
	status     *DecodeStatus
	renderable any
	ctx        *resultctx.Context

	children []*Builder
	sections []ResultSection

	// in is the Input this builder's spec decodes bytes from. Non-Input
	// builders inherit their parent's in; an Input builder carries the
	// freshly derived/decoded input installed by AddInput.
	in scanin.Input
}

// NewRoot creates the root builder for a top-level decode against in.
func NewRoot(spec any, in scanin.Input, order binary.ByteOrder, start int64, ctx *resultctx.Context) *Builder {
	return &Builder{spec: spec, typ: Format, order: order, start: start, end: start, ctx: ctx, in: in}
}

// Spec returns the spec this builder is decoding, as stored by the caller.
func (b *Builder) Spec() any { return b.spec }

// Type returns the result type this builder will freeze into.
func (b *Builder) Type() ResultType { return b.typ }

// Start returns the region's start offset.
func (b *Builder) Start() int64 { return b.start }

// End returns the end offset as last raised by UpdateEnd (or AddSection).
// Child ends are not included here; ToResult folds them into the frozen
// Result's End.
func (b *Builder) End() int64 { return b.end }

// Context returns the scope this builder's spec should bind attributes
// into.
func (b *Builder) Context() *resultctx.Context { return b.ctx }

// Input returns the Input this builder's spec reads bytes from.
func (b *Builder) Input() scanin.Input { return b.in }

// Order returns the byte order this builder's spec decodes with.
func (b *Builder) Order() binary.ByteOrder { return b.order }

// SetTitle names this region, typically the format's declared name.
func (b *Builder) SetTitle(title string) { b.title = title }

// SetStatus attaches a decode status. A later call with a fatal status
// overrides an earlier non-fatal one; a non-fatal call never downgrades an
// already-fatal status.
func (b *Builder) SetStatus(s *DecodeStatus) {
	if s == nil {
		return
	}
	if b.status != nil && b.status.Fatal && !s.Fatal {
		return
	}
	b.status = s
}

// Status returns the currently attached status, or nil.
func (b *Builder) Status() *DecodeStatus { return b.status }

// SetRenderable records the spec whose Render method should be invoked to
// produce this region's output.
func (b *Builder) SetRenderable(spec any) { b.renderable = spec }

// UpdateEnd extends the builder's end to max(current end, e). It is an
// error for e to be less than start.
func (b *Builder) UpdateEnd(e int64) error {
	if e < b.start {
		return fmt.Errorf("resulttree: end %d before start %d", e, b.start)
	}
	if e > b.end {
		b.end = e
	}
	return nil
}

// AddResult opens a new child builder of the given spec/type at start,
// attaches it in position order, and returns it for the caller to decode
// into. The child inherits b's Input and decodes with the given order. It refuses if b is
// itself an Input builder (§4.5).
func (b *Builder) AddResult(spec any, typ ResultType, start int64, order binary.ByteOrder, ctx *resultctx.Context) (*Builder, error) {
	if b.typ == Input {
		return nil, fmt.Errorf("resulttree: cannot add a result child to an INPUT builder")
	}
	if start < b.start {
		return nil, fmt.Errorf("resulttree: child start %d before parent start %d", start, b.start)
	}
	if len(b.children) > 0 && start < b.children[len(b.children)-1].start {
		return nil, fmt.Errorf("resulttree: child start %d not monotonic after previous child at %d", start, b.children[len(b.children)-1].start)
	}
	child := &Builder{parent: b, spec: spec, typ: typ, order: order, start: start, end: start, ctx: ctx, in: b.in}
	b.children = append(b.children, child)
	return child, nil
}

// AddInput attaches an INPUT child spanning the whole of in, named for
// later recursive (external) scanning.
func (b *Builder) AddInput(in scanin.Input) (*Builder, error) {
	if b.typ == Input {
		return nil, fmt.Errorf("resulttree: cannot add an input child to an INPUT builder")
	}
	child := &Builder{parent: b, typ: Input, order: in.Order(), start: 0, end: in.Size(), in: in}
	b.children = append(b.children, child)
	return child, nil
}

// AddSection records a non-result spec's contribution for later
// rendering.
func (b *Builder) AddSection(spec any, start, end int64) error {
	if end < start {
		return fmt.Errorf("resulttree: section end %d before start %d", end, start)
	}
	b.sections = append(b.sections, ResultSection{Spec: spec, Start: start, End: end})
	return b.UpdateEnd(end)
}

// ToResult freezes b (and, recursively, its children) into an immutable
// Result attached under parent. Empty child builders (start==end, no
// children, no sections) are dropped — the caller receives nil for those
// and must skip attaching them. A root builder is always frozen, so a
// decode that consumed nothing still returns its status. Each kept child's
// context is adopted into b's context, once. ToResult may be called more
// than once on the same, unmodified builder and yields structurally-equal
// trees each time.
func (b *Builder) ToResult(parent *Result) *Result {
	frozenChildren := make([]*Result, 0, len(b.children))
	maxChildEnd := b.end
	for _, c := range b.children {
		fr := c.ToResult(nil)
		if fr == nil {
			continue
		}
		frozenChildren = append(frozenChildren, fr)
		if fr.End > maxChildEnd {
			maxChildEnd = fr.End
		}
	}

	if b.parent != nil && b.end == b.start && len(frozenChildren) == 0 && len(b.sections) == 0 {
		return nil
	}

	if b.ctx != nil && parent != nil && parent.Context != nil {
		parent.Context.AdoptChild(b.ctx)
	}

	sections := make([]ResultSection, len(b.sections))
	copy(sections, b.sections)

	r := &Result{
		Parent:     parent,
		Type:       b.typ,
		Spec:       b.spec,
		Order:      b.order,
		Start:      b.start,
		End:        maxChildEnd,
		Title:      b.title,
		Status:     b.status,
		Renderable: b.renderable,
		Context:    b.ctx,
		Sections:   sections,
		Input:      b.in,
	}
	r.Children = frozenChildren
	for _, c := range r.Children {
		c.Parent = r
		if r.Context == nil || c.Context == nil || c.Context == r.Context {
			continue
		}
		adopted := false
		for _, a := range r.Context.Children() {
			if a == c.Context {
				adopted = true
				break
			}
		}
		if !adopted {
			r.Context.AdoptChild(c.Context)
		}
	}
	return r
}
