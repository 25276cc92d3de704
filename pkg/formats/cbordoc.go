package formats

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

// cborDocExtensionTag is the CBOR tag number that, when it wraps the
// document's top-level item, means a trailing extension record follows.
// Chosen from CBOR's unassigned-for-private-use range (tag 55800).
const cborDocExtensionTag = 55800

// NewCBORDoc builds a small container format: a 4-byte magic, one
// self-delimiting CBOR data item, and — only when that item is tagged
// cborDocExtensionTag — a trailing extension record. It exists mainly to
// exercise CBORAttribute and ConditionalSpec end to end against a decoded
// CBOR value rather than a raw byte comparison.
func NewCBORDoc() formatspec.Spec {
	magic := formatspec.NewNumberAttribute[uint32]("magic").WithFinal(0x43424f52) // "CBOR"

	payload := formatspec.NewCBORAttribute("payload").WithBind()

	extensionID := formatspec.NewNumberAttribute[uint32]("extension id")
	extension := &formatspec.StructSpec{Children: []formatspec.Spec{extensionID}}
	extension.AsNamedResult("extension")

	tagged := &formatspec.ConditionalSpec{
		Predicate: func(ctx *resultctx.Context) (bool, error) {
			v, ok := payload.Value(ctx)
			if !ok {
				return false, nil
			}
			tag, ok := v.(cbor.Tag)
			return ok && tag.Number == cborDocExtensionTag, nil
		},
		Then: extension,
	}

	doc := &formatspec.StructSpec{Children: []formatspec.Spec{magic, payload, tagged}}
	doc.AsNamedResult("cbor-doc")
	doc.Kind = resulttree.Format
	return doc
}
