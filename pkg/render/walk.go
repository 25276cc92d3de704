package render

import "github.com/binlens/binlens/pkg/resulttree"

// Render walks r depth-first, invoking each result's renderable spec's
// Render method against out (§4.4); a composite spec renders its own
// recorded sections itself, so this walk never touches r.Sections
// directly. A result with no renderable spec, or whose spec writes nothing
// while out still has no output at all, gets the default view instead: its
// title as a label, with no hex dump of its bytes. HasOutput is cumulative,
// so a silent result rendered after earlier output gets no default view.
// Any attached DecodeStatus is rendered
// last so a warning or fatal error always appears after the region's own
// output rather than interleaved with it.
func Render(r *resulttree.Result, out Renderer) error {
	if err := out.WritePreamble(); err != nil {
		return err
	}
	if err := renderResult(r, out); err != nil {
		return err
	}
	return out.WriteEpilogue()
}

func renderResult(r *resulttree.Result, out Renderer) error {
	if spec, ok := r.Renderable.(SpecRenderer); ok {
		before := out.HasOutput()
		if err := spec.Render(r, r.Start, r.End, out); err != nil {
			return err
		}
		if !before && !out.HasOutput() {
			if err := writeHexFallback(r, out); err != nil {
				return err
			}
		}
	} else {
		if err := writeHexFallback(r, out); err != nil {
			return err
		}
	}

	for _, child := range r.Children {
		if err := renderResult(child, out); err != nil {
			return err
		}
	}

	return renderStatus(r, out)
}

func renderStatus(r *resulttree.Result, out Renderer) error {
	if r.Status == nil {
		return nil
	}
	mode := Comment
	if r.Status.Fatal {
		mode = Error
	}
	if err := out.WriteBeginMode(mode); err != nil {
		return err
	}
	if err := out.WriteText(mode, r.Status.Message); err != nil {
		return err
	}
	if err := out.WriteEndMode(mode); err != nil {
		return err
	}
	return out.WriteBreak()
}

// writeHexFallback renders the fixed default view for a region whose spec
// is absent or chose to write nothing: its title (or, when untitled, its
// result type) as a label and a line break. It writes neither a byte count
// nor the raw bytes themselves.
func writeHexFallback(r *resulttree.Result, out Renderer) error {
	if err := out.WriteBeginMode(Label); err != nil {
		return err
	}
	title := r.Title
	if title == "" {
		title = r.Type.String()
	}
	if err := out.WriteText(Label, title); err != nil {
		return err
	}
	if err := out.WriteEndMode(Label); err != nil {
		return err
	}
	return out.WriteBreak()
}
