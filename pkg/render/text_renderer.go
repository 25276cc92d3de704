package render

import (
	"bufio"
	"fmt"
	"io"
)

// TextRenderer is the deterministic reference Renderer used by the core's
// own tests and by cmd/binlens-scan's plain-text output mode. It discards
// Mode entirely (no color, no markup), writes ref anchors as a trailing
// @offset and embedded media as bracketed placeholders. Output is buffered
// until WriteEpilogue or Close flushes it.
type TextRenderer struct {
	w         *bufio.Writer
	hasOutput bool
}

// NewTextRenderer wraps w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: bufio.NewWriter(w)}
}

func (t *TextRenderer) WritePreamble() error { return nil }
func (t *TextRenderer) WriteEpilogue() error { return t.w.Flush() }

func (t *TextRenderer) WriteBeginMode(m Mode) error { return nil }
func (t *TextRenderer) WriteEndMode(m Mode) error   { return nil }

func (t *TextRenderer) WriteText(m Mode, s string) error {
	if s == "" {
		return nil
	}
	t.hasOutput = true
	_, err := t.w.WriteString(s)
	return err
}

// WriteRefText writes s followed by the anchor it refers back to. The
// anchor format (@offset) is this renderer's own convention, not a wire
// format any other component parses.
func (t *TextRenderer) WriteRefText(m Mode, s string, anchorPosition int64) error {
	t.hasOutput = true
	_, err := fmt.Fprintf(t.w, "%s@%d", s, anchorPosition)
	return err
}

func (t *TextRenderer) WriteBreak() error {
	t.hasOutput = true
	_, err := t.w.WriteString("\n")
	return err
}

// WriteImage and WriteVideo render a bracketed placeholder rather than
// attempting to open h — a text stream has nowhere to put image bytes.
func (t *TextRenderer) WriteImage(m Mode, h StreamHandler) error {
	return t.writePlaceholder("image")
}

func (t *TextRenderer) WriteVideo(m Mode, h StreamHandler) error {
	return t.writePlaceholder("video")
}

// WriteRefImage and WriteRefVideo cover referenced (not inline) embedded
// media. How a referenced thumbnail should actually render is left
// undefined; this renderer emits the anchor plus a placeholder that says
// so explicitly, rather than silently rendering nothing.
func (t *TextRenderer) WriteRefImage(m Mode, h StreamHandler, anchorPosition int64) error {
	return t.writeRefPlaceholder("image", anchorPosition)
}

func (t *TextRenderer) WriteRefVideo(m Mode, h StreamHandler, anchorPosition int64) error {
	return t.writeRefPlaceholder("video", anchorPosition)
}

func (t *TextRenderer) writePlaceholder(kind string) error {
	t.hasOutput = true
	_, err := fmt.Fprintf(t.w, "[%s]", kind)
	return err
}

func (t *TextRenderer) writeRefPlaceholder(kind string, anchorPosition int64) error {
	t.hasOutput = true
	_, err := fmt.Fprintf(t.w, "[%s@%d: no thumbnail, referenced media rendering is undefined]", kind, anchorPosition)
	return err
}

func (t *TextRenderer) HasOutput() bool { return t.hasOutput }

func (t *TextRenderer) Close() error { return t.w.Flush() }
