package formatspec

import (
	"encoding/binary"
	"testing"

	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
	"github.com/binlens/binlens/pkg/scanin"
)

func decodeRoot(t *testing.T, spec Spec, data []byte) (*resulttree.Result, int64) {
	t.Helper()
	in := scanin.NewBufferInput(data, "test", binary.BigEndian)
	root := resulttree.NewRoot(spec, in, binary.BigEndian, 0, resultctx.NewRoot())
	root.SetRenderable(spec)
	consumed, err := spec.Decode(root, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := root.UpdateEnd(consumed); err != nil {
		t.Fatalf("UpdateEnd: %v", err)
	}
	return root.ToResult(nil), consumed
}

func TestNumberAttributeFixedSizeDecodesExactMatchSize(t *testing.T) {
	attr := NewNumberAttribute[uint32]("length")
	res, consumed := decodeRoot(t, attr, []byte{0, 0, 0, 42, 0xFF})
	if !attr.IsFixedSize() {
		t.Fatal("expected NumberAttribute to be fixed size")
	}
	if consumed != int64(attr.MatchSize()) {
		t.Fatalf("expected consumed == MatchSize() == %d, got %d", attr.MatchSize(), consumed)
	}
	if res == nil {
		t.Fatal("expected a non-nil result for an attribute decode spanning [0,4)")
	}
}

func TestStructMatchSizeStopsAtFirstNonFixedInclusive(t *testing.T) {
	s := NewStructSpec(
		NewNumberAttribute[uint8]("a"),
		NewNumberAttribute[uint16]("b"),
		&ArraySpec{Element: NewNumberAttribute[uint8]("elem")}, // variable size: MatchSize()==0
		NewNumberAttribute[uint32]("never-counted"),
	)
	// 1 (a) + 2 (b) + 0 (array, non-fixed, included) = 3; the trailing
	// fixed uint32 after the first non-fixed child must NOT be counted.
	if got, want := s.MatchSize(), 3; got != want {
		t.Fatalf("MatchSize() = %d, want %d", got, want)
	}
	if s.IsFixedSize() {
		t.Fatal("expected struct with a variable-size child to be non-fixed")
	}
}

func TestPNGSignatureScenario(t *testing.T) {
	magic := NewStructSpec(
		NewNumberAttribute[uint8]("m0").WithFinal(0x89),
		NewNumberAttribute[uint8]("m1").WithFinal('P'),
		NewNumberAttribute[uint8]("m2").WithFinal('N'),
		NewNumberAttribute[uint8]("m3").WithFinal('G'),
		NewNumberAttribute[uint8]("m4").WithFinal(0x0D),
		NewNumberAttribute[uint8]("m5").WithFinal(0x0A),
		NewNumberAttribute[uint8]("m6").WithFinal(0x1A),
		NewNumberAttribute[uint8]("m7").WithFinal(0x0A),
	)
	root := NewStructSpec(magic, NewNumberAttribute[uint8]("trailer"))
	root.AsNamedResult("PNG")

	data := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)
	if !root.Matches(data[:root.MatchSize()]) {
		t.Fatal("expected PNG signature struct to match")
	}

	res, consumed := decodeRoot(t, root, data)
	if consumed < 8 {
		t.Fatalf("expected at least 8 bytes consumed, got %d", consumed)
	}
	if len(res.Sections) == 0 || res.Sections[0].Start != 0 || res.Sections[0].End != 8 {
		t.Fatalf("expected first section to cover [0,8), got %+v", res.Sections)
	}
}

func TestTruncatedInputScenario(t *testing.T) {
	s := NewStructSpec(
		NewNumberAttribute[uint64]("a"),
		NewNumberAttribute[uint64]("b"),
	)
	data := make([]byte, 10) // 16 bytes needed, only 10 available
	res, _ := decodeRoot(t, s, data)
	if res.Status == nil || !res.Status.Fatal {
		t.Fatalf("expected a fatal status on truncated input, got %+v", res.Status)
	}
	if len(res.Children) != 0 {
		t.Fatalf("expected no children on the root after a fatal truncation, got %d", len(res.Children))
	}
}

func TestConditionalUnionScenario(t *testing.T) {
	variantA := NewStructSpec(
		NewNumberAttribute[uint8]("tag").WithFinal(0x01),
		NewNumberAttribute[uint8]("x"),
		NewNumberAttribute[uint8]("y"),
		NewNumberAttribute[uint8]("z"),
	)
	variantB := NewStructSpec(
		NewNumberAttribute[uint8]("tag").WithFinal(0x02),
		NewNumberAttribute[uint8]("p"),
		NewNumberAttribute[uint8]("q"),
		NewNumberAttribute[uint8]("r"),
	)
	u := &UnionSpec{Name: "variant", Alternatives: []Spec{variantA, variantB}}
	enclosing := NewStructSpec(u)

	_, consumed := decodeRoot(t, enclosing, []byte{0x01, 0xAA, 0xBB, 0xCC})
	if consumed != 4 {
		t.Fatalf("variant A: expected 4 bytes consumed, got %d", consumed)
	}

	_, consumed = decodeRoot(t, enclosing, []byte{0x02, 0xAA, 0xBB, 0xCC})
	if consumed != 4 {
		t.Fatalf("variant B: expected 4 bytes consumed, got %d", consumed)
	}

	res, _ := decodeRoot(t, enclosing, []byte{0x03, 0xAA, 0xBB, 0xCC})
	if res.Status == nil || !res.Status.Fatal {
		t.Fatalf("expected fatal status when no union alternative matches, got %+v", res.Status)
	}
}

func TestToResultIdempotentAcrossSpecDecode(t *testing.T) {
	attr := NewNumberAttribute[uint16]("v").WithBind()
	in := scanin.NewBufferInput([]byte{0x01, 0x02}, "test", binary.BigEndian)
	root := resulttree.NewRoot(attr, in, binary.BigEndian, 0, resultctx.NewRoot())
	root.SetRenderable(attr)
	consumed, err := attr.Decode(root, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := root.UpdateEnd(consumed); err != nil {
		t.Fatal(err)
	}

	first := root.ToResult(nil)
	second := root.ToResult(nil)
	if !first.Equal(second) {
		t.Fatal("expected repeated ToResult calls to be structurally equal")
	}
}
