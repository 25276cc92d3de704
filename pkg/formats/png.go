package formats

import (
	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

var pngChunkTypes = map[uint32]string{
	0x49484452: "IHDR",
	0x49444154: "IDAT",
	0x49454e44: "IEND",
	0x504c5445: "PLTE",
	0x74524e53: "tRNS",
	0x67414d41: "gAMA",
	0x70485973: "pHYs",
	0x74455874: "tEXt",
	0x7a545874: "zTXt",
	0x74494d45: "tIME",
}

// NewPNG builds the PNG format: an 8-byte signature followed by a
// repeating sequence of length-prefixed chunks, each naming its own type
// and carrying its raw (still zlib/DEFLATE-wrapped, for IDAT) payload as an
// encoded section sized by its own length field.
func NewPNG() formatspec.Spec {
	signature := formatspec.NewNumberAttribute[uint64]("signature").WithFinal(0x89504e470d0a1a0a)

	length := formatspec.NewNumberAttribute[uint32]("length").WithBind()
	chunkType := formatspec.NewSymbolAttribute(formatspec.NewNumberAttribute[uint32]("type"), pngChunkTypes)

	data := &formatspec.EncodedFormatSpec{
		Name: "data",
		Params: resultctx.Thunk(func(ctx *resultctx.Context) (formatspec.DecodeParams, error) {
			n, _ := length.Value(ctx)
			return formatspec.DecodeParams{
				EncodedName: "data",
				EncodedSize: int64(n),
				DecodedPath: "chunk-data",
			}, nil
		}),
	}

	crc := formatspec.NewNumberAttribute[uint32]("crc")

	chunk := &formatspec.StructSpec{
		Children: []formatspec.Spec{length, chunkType, data, crc},
	}
	chunk.AsNamedResult("chunk")

	chunks := &formatspec.ArraySpec{
		Name:    "chunks",
		Element: chunk,
	}

	png := &formatspec.StructSpec{
		Children: []formatspec.Spec{signature, chunks},
	}
	png.AsNamedResult("png")
	png.Kind = resulttree.Format
	return png
}
