package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
	"github.com/binlens/binlens/pkg/scanin"
)

func testInput() scanin.Input {
	return scanin.NewBufferInput(make([]byte, 32), "test", binary.BigEndian)
}

// labelSpec is a minimal SpecRenderer used only by these tests.
type labelSpec struct{ label string }

func (s *labelSpec) Render(r *resulttree.Result, start, end int64, out Renderer) error {
	if err := out.WriteBeginMode(Keyword); err != nil {
		return err
	}
	if err := out.WriteText(Keyword, s.label); err != nil {
		return err
	}
	if err := out.WriteEndMode(Keyword); err != nil {
		return err
	}
	return out.WriteBreak()
}

type silentSpec struct{}

func (s *silentSpec) Render(r *resulttree.Result, start, end int64, out Renderer) error {
	return nil
}

func TestRenderInvokesRenderable(t *testing.T) {
	root := resulttree.NewRoot(&labelSpec{"root"}, testInput(), binary.BigEndian, 0, resultctx.NewRoot())
	root.SetTitle("root")
	root.SetRenderable(&labelSpec{"root-value"})
	if err := root.UpdateEnd(4); err != nil {
		t.Fatal(err)
	}
	res := root.ToResult(nil)

	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	if err := Render(res, tr); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "root-value\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderFallsBackToTitleWhenSilent(t *testing.T) {
	root := resulttree.NewRoot(&silentSpec{}, testInput(), binary.BigEndian, 0, resultctx.NewRoot())
	root.SetTitle("silent-region")
	root.SetRenderable(&silentSpec{})
	if err := root.UpdateEnd(4); err != nil {
		t.Fatal(err)
	}
	res := root.ToResult(nil)

	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	if err := Render(res, tr); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "silent-region\n" {
		t.Fatalf("unexpected fallback output: %q", got)
	}
}

func TestRenderStatusAfterChildren(t *testing.T) {
	root := resulttree.NewRoot(&labelSpec{"root"}, testInput(), binary.BigEndian, 0, resultctx.NewRoot())
	root.SetRenderable(&labelSpec{"root"})
	root.SetStatus(resulttree.Warning("trailing garbage", nil))
	child, err := root.AddResult(&labelSpec{"child"}, resulttree.Format, 0, binary.BigEndian, resultctx.NewRoot())
	if err != nil {
		t.Fatal(err)
	}
	child.SetRenderable(&labelSpec{"child"})
	if err := child.UpdateEnd(2); err != nil {
		t.Fatal(err)
	}
	if err := root.UpdateEnd(4); err != nil {
		t.Fatal(err)
	}
	res := root.ToResult(nil)

	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	if err := Render(res, tr); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "root\nchild\ntrailing garbage\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	root := resulttree.NewRoot(&labelSpec{"root"}, testInput(), binary.BigEndian, 0, resultctx.NewRoot())
	root.SetRenderable(&labelSpec{"root"})
	child, err := root.AddResult(&labelSpec{"child"}, resulttree.Format, 0, binary.BigEndian, resultctx.NewRoot())
	if err != nil {
		t.Fatal(err)
	}
	child.SetRenderable(&labelSpec{"child-value"})
	if err := child.UpdateEnd(2); err != nil {
		t.Fatal(err)
	}
	res := root.ToResult(nil)

	render := func() string {
		var buf bytes.Buffer
		tr := NewTextRenderer(&buf)
		if err := Render(res, tr); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return buf.String()
	}
	first, second := render(), render()
	if first != second {
		t.Fatalf("render not deterministic: %q != %q", first, second)
	}
}

// refSpec renders a reference back to a fixed anchor position, standing in
// for e.g. a directory entry pointing at the header it describes.
type refSpec struct{ anchor int64 }

func (s *refSpec) Render(r *resulttree.Result, start, end int64, out Renderer) error {
	if err := out.WriteRefText(Value, "see header", s.anchor); err != nil {
		return err
	}
	return out.WriteBreak()
}

// TestWriteRefTextResolvesAnchorOffset is the reference-anchor scenario: a
// ref written at render time carries an anchor position that resolves back
// to the offset of another node already present in the tree.
func TestWriteRefTextResolvesAnchorOffset(t *testing.T) {
	root := resulttree.NewRoot(&labelSpec{"root"}, testInput(), binary.BigEndian, 0, resultctx.NewRoot())
	root.SetRenderable(&labelSpec{"root"})
	header, err := root.AddResult(&labelSpec{"header"}, resulttree.Format, 0x20, binary.BigEndian, resultctx.NewRoot())
	if err != nil {
		t.Fatal(err)
	}
	header.SetTitle("header")
	header.SetRenderable(&labelSpec{"header"})
	if err := header.UpdateEnd(0x24); err != nil {
		t.Fatal(err)
	}
	ref, err := root.AddResult(&refSpec{anchor: 0x20}, resulttree.Format, 0x40, binary.BigEndian, resultctx.NewRoot())
	if err != nil {
		t.Fatal(err)
	}
	ref.SetRenderable(&refSpec{anchor: 0x20})
	if err := ref.UpdateEnd(0x44); err != nil {
		t.Fatal(err)
	}
	if err := root.UpdateEnd(0x44); err != nil {
		t.Fatal(err)
	}
	res := root.ToResult(nil)

	var headerStart int64 = -1
	for _, c := range res.Children {
		if c.Title == "header" {
			headerStart = c.Start
		}
	}
	if headerStart != 0x20 {
		t.Fatalf("expected a header child at 0x20, found at %#x", headerStart)
	}

	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	if err := Render(res, tr); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := fmt.Sprintf("see header@%d", headerStart)
	if !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Fatalf("expected rendered output to reference offset %#x, got %q", headerStart, buf.String())
	}
}

func TestWriteRefImagePlaceholderFlagsUndefinedBehavior(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTextRenderer(&buf)
	if err := tr.WriteRefImage(Normal, nil, 42); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[image@42: no thumbnail, referenced media rendering is undefined]" {
		t.Fatalf("unexpected placeholder: %q", got)
	}
}
