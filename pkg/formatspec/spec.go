package formatspec

import (
	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// Spec is the contract every node in a format description implements.
type Spec interface {
	// MatchSize returns the number of bytes required at the prospective
	// position for Matches to inspect. Zero opts out of prefix matching
	// entirely — the spec only ever decodes, never probes.
	MatchSize() int

	// Matches reports whether decode should be attempted, given a buffer
	// of at least MatchSize() bytes read at the prospective position. It
	// must not mutate any state reachable from the spec.
	Matches(buf []byte) bool

	// IsFixedSize reports whether Decode always consumes exactly
	// MatchSize() bytes on success.
	IsFixedSize() bool

	// Decode decodes into b starting at pos and returns the number of
	// bytes consumed. It may attach children to b via AddResult/AddInput
	// and may call b.SetStatus to record a non-fatal warning or a fatal
	// decode status; a fatal status is never returned as a Go error.
	Decode(b *resulttree.Builder, pos int64) (int64, error)

	// Render emits this spec's contribution to out for the span
	// [start,end) of r.
	Render(r *resulttree.Result, start, end int64, out render.Renderer) error

	// IsResult reports whether decoding this spec opens a new child
	// result rather than recording a ResultSection on the parent.
	IsResult() bool

	// ResultType is meaningful only when IsResult() is true.
	ResultType() resulttree.ResultType
}
