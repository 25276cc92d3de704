package render

import (
	"io"

	"github.com/binlens/binlens/pkg/resulttree"
)

// Mode is a styled-text classification a Renderer may use to pick fonts,
// colors, or markup (§4.4).
type Mode int

const (
	Normal Mode = iota
	Keyword
	Operator
	Value
	Comment
	Label
	Error
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Keyword:
		return "KEYWORD"
	case Operator:
		return "OPERATOR"
	case Value:
		return "VALUE"
	case Comment:
		return "COMMENT"
	case Label:
		return "LABEL"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StreamHandler opens a byte stream for embedded media rendering. Its
// lifecycle (when the stream is actually opened and closed) is managed by
// the Renderer, not the caller.
type StreamHandler interface {
	Open() (io.ReadCloser, error)
}

// Renderer is the styled-output sink a format spec's Render method writes
// into. Implementations are external collaborators; the core never
// constructs a concrete one except for TextRenderer, its own reference/test
// implementation.
type Renderer interface {
	WritePreamble() error
	WriteEpilogue() error

	WriteBeginMode(m Mode) error
	WriteEndMode(m Mode) error
	WriteText(m Mode, s string) error

	// WriteRefText writes s as a reference back to anchorPosition — an
	// offset elsewhere in the same decode that a viewer can jump to.
	WriteRefText(m Mode, s string, anchorPosition int64) error

	WriteBreak() error

	WriteImage(m Mode, h StreamHandler) error
	WriteVideo(m Mode, h StreamHandler) error
	WriteRefImage(m Mode, h StreamHandler, anchorPosition int64) error
	WriteRefVideo(m Mode, h StreamHandler, anchorPosition int64) error

	// HasOutput reports whether anything has been written yet. Used by
	// the render walk's fallback (§4.4): a result-producing spec that
	// wrote nothing gets a default title-only view instead.
	HasOutput() bool

	Close() error
}

// SpecRenderer is the narrow interface the render driver needs from a
// frozen Result's Renderable spec. formatspec.Spec satisfies this
// structurally; render does not import formatspec to avoid a cycle (both
// formatspec and render need resulttree, and formatspec needs Renderer).
type SpecRenderer interface {
	Render(r *resulttree.Result, start, end int64, out Renderer) error
}
