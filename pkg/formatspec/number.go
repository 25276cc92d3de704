package formatspec

import (
	"encoding/binary"
	"fmt"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

// Number is the set of fixed-width integer types a NumberAttribute may
// decode (spec.md's Attribute<T>, parameterized over Go generics per the
// u8..u64/i8..i64 requirement).
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

func sizeOf[T Number]() int {
	var v T
	switch any(v).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32:
		return 4
	case uint64, int64:
		return 8
	default:
		panic(fmt.Sprintf("formatspec: unsupported number type %T", v))
	}
}

func decodeNumber[T Number](buf []byte, order binary.ByteOrder) T {
	var v T
	switch sizeOf[T]() {
	case 1:
		return T(buf[0])
	case 2:
		return T(order.Uint16(buf))
	case 4:
		return T(order.Uint32(buf))
	case 8:
		return T(order.Uint64(buf))
	}
	return v
}

// ValueRenderer formats a decoded value for display, e.g. as hex or a
// derived unit. Attached to a NumberAttribute to render alongside the
// raw decimal value.
type ValueRenderer[T Number] func(T) string

// NumberAttribute is a fixed-size numeric leaf spec. Its own pointer
// identity is the key bound values are looked up by in a ResultContext —
// matching spec.md §4.2's "lookup from attribute identity, not name."
type NumberAttribute[T Number] struct {
	Name string

	// Order overrides the enclosing format's byte order for this single
	// field, e.g. a big-endian length inside an otherwise little-endian
	// container. Nil means "use the decoding builder's order."
	Order binary.ByteOrder

	// Final, when non-nil, is the value Matches and Decode require the
	// decoded number to equal — e.g. a magic-byte field.
	Final *T

	// Bind selects whether a decoded value is published into the
	// enclosing ResultContext for later reference by other specs.
	Bind bool

	// Renderers format the decoded value alongside its raw form.
	Renderers []ValueRenderer[T]
}

// NewNumberAttribute creates an unbound, non-final NumberAttribute named
// name.
func NewNumberAttribute[T Number](name string) *NumberAttribute[T] {
	return &NumberAttribute[T]{Name: name}
}

// WithFinal requires the decoded value to equal v for Matches to succeed.
func (a *NumberAttribute[T]) WithFinal(v T) *NumberAttribute[T] {
	a.Final = &v
	return a
}

// WithBind publishes the decoded value into the enclosing ResultContext.
func (a *NumberAttribute[T]) WithBind() *NumberAttribute[T] {
	a.Bind = true
	return a
}

// WithOrder overrides the byte order used to decode this one field.
func (a *NumberAttribute[T]) WithOrder(order binary.ByteOrder) *NumberAttribute[T] {
	a.Order = order
	return a
}

// WithRenderer appends a display-form renderer.
func (a *NumberAttribute[T]) WithRenderer(r ValueRenderer[T]) *NumberAttribute[T] {
	a.Renderers = append(a.Renderers, r)
	return a
}

func (a *NumberAttribute[T]) order(fallback binary.ByteOrder) binary.ByteOrder {
	if a.Order != nil {
		return a.Order
	}
	if fallback != nil {
		return fallback
	}
	return binary.BigEndian
}

func (a *NumberAttribute[T]) MatchSize() int { return sizeOf[T]() }

// Matches decodes buf with a's own order (falling back to big-endian,
// since no builder — and so no enclosing order — exists yet at match
// time) and, if a is final, requires equality.
func (a *NumberAttribute[T]) Matches(buf []byte) bool {
	if a.Final == nil {
		return true
	}
	v := decodeNumber[T](buf, a.order(nil))
	return v == *a.Final
}

func (a *NumberAttribute[T]) IsFixedSize() bool { return true }

func (a *NumberAttribute[T]) Decode(b *resulttree.Builder, pos int64) (int64, error) {
	size := sizeOf[T]()
	order := a.order(b.Order())
	// Read the raw bytes in the input's own order; decodeNumber applies
	// order itself, as Matches does.
	buf, err := b.Input().CachedRead(pos, size, b.Input().Order())
	if err != nil {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: short read at %d", a.Name, pos), err))
		return 0, nil
	}
	v := decodeNumber[T](buf, order)
	if a.Final != nil && v != *a.Final {
		b.SetStatus(resulttree.Fatal(fmt.Sprintf("%s: expected %v, got %v", a.Name, *a.Final, v), nil))
		return int64(size), nil
	}
	if a.Bind {
		b.Context().Set(a, v)
	}
	return int64(size), nil
}

// Value resolves a's bound value against ctx, walking outward through
// enclosing scopes. The second return is false if a was never bound in
// any scope reachable from ctx.
func (a *NumberAttribute[T]) Value(ctx *resultctx.Context) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	raw, ok := ctx.Get(a)
	if !ok {
		return zero, false
	}
	tv, ok := raw.(T)
	return tv, ok
}

func (a *NumberAttribute[T]) Render(r *resulttree.Result, start, end int64, out render.Renderer) error {
	v, _ := a.Value(r.Context)
	if err := out.WriteBeginMode(render.Value); err != nil {
		return err
	}
	text := fmt.Sprintf("%s = %v", a.Name, v)
	for _, rnd := range a.Renderers {
		text += fmt.Sprintf(" (%s)", rnd(v))
	}
	if err := out.WriteText(render.Value, text); err != nil {
		return err
	}
	if err := out.WriteEndMode(render.Value); err != nil {
		return err
	}
	return out.WriteBreak()
}

func (a *NumberAttribute[T]) IsResult() bool { return false }

func (a *NumberAttribute[T]) ResultType() resulttree.ResultType { return resulttree.Format }
