package formats

import (
	"encoding/binary"

	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/codec/flatecodec"
	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
)

const (
	zipLocalFileHeaderSignature      = 0x04034b50
	zipCentralDirectoryHeaderSignature = 0x02014b50
	zipEndOfCentralDirectorySignature = 0x06054b50
)

func le16(name string) *formatspec.NumberAttribute[uint16] {
	return formatspec.NewNumberAttribute[uint16](name).WithOrder(binary.LittleEndian)
}

func le32(name string) *formatspec.NumberAttribute[uint32] {
	return formatspec.NewNumberAttribute[uint32](name).WithOrder(binary.LittleEndian)
}

// slicedSection is a straight-copy encoded section sized by size — no
// decoder, the bytes pass through unchanged (ZIP's stored/method-0 entries,
// and every entry's filename/extra/comment fields regardless of method).
func slicedSection(name, path string, size *resultctx.Expression[int64]) *formatspec.EncodedFormatSpec {
	return &formatspec.EncodedFormatSpec{
		Name: name,
		Params: resultctx.Thunk(func(ctx *resultctx.Context) (formatspec.DecodeParams, error) {
			n, err := size.Eval(ctx)
			if err != nil {
				return formatspec.DecodeParams{}, err
			}
			return formatspec.DecodeParams{EncodedName: name, EncodedSize: n, DecodedPath: path}, nil
		}),
	}
}

func sizeFromU16(a *formatspec.NumberAttribute[uint16]) *resultctx.Expression[int64] {
	e := resultctx.Thunk(func(ctx *resultctx.Context) (int64, error) {
		v, _ := a.Value(ctx)
		return int64(v), nil
	})
	return &e
}

// newLocalFileHeader builds ZIP's local file header entry: a fixed-size
// header, a filename and extra field (always sliced straight through), and
// a data section whose decoder depends on the entry's own compression
// method — deflate (8) through flatecodec, stored (0) as a straight slice,
// same as the filename/extra fields.
func newLocalFileHeader(cache codec.DecodeCache) *formatspec.StructSpec {
	signature := formatspec.NewNumberAttribute[uint32]("signature").WithOrder(binary.LittleEndian).WithFinal(zipLocalFileHeaderSignature)
	versionNeeded := le16("version needed")
	flags := le16("flags")
	method := le16("method").WithBind()
	modTime := le16("mod time")
	modDate := le16("mod date")
	crc32 := le32("crc-32")
	compressedSize := le32("compressed size").WithBind()
	uncompressedSize := le32("uncompressed size")
	fileNameLength := le16("file name length").WithBind()
	extraFieldLength := le16("extra field length").WithBind()

	fileName := slicedSection("file name", "name", sizeFromU16(fileNameLength))
	extraField := slicedSection("extra field", "extra", sizeFromU16(extraFieldLength))

	data := &formatspec.EncodedFormatSpec{
		Name:  "data",
		Cache: cache,
		Params: resultctx.Thunk(func(ctx *resultctx.Context) (formatspec.DecodeParams, error) {
			m, _ := method.Value(ctx)
			size, _ := compressedSize.Value(ctx)
			params := formatspec.DecodeParams{
				EncodedName: "data",
				EncodedSize: int64(size),
				DecodedPath: "entry-data",
			}
			if m == 8 {
				params.DecoderFactory = func(*resultctx.Context) (codec.Decoder, error) {
					return flatecodec.New(), nil
				}
			}
			return params, nil
		}),
	}

	header := &formatspec.StructSpec{
		Children: []formatspec.Spec{
			signature, versionNeeded, flags, method, modTime, modDate, crc32,
			compressedSize, uncompressedSize, fileNameLength, extraFieldLength,
			fileName, extraField, data,
		},
	}
	return header.AsNamedResult("local-file-header")
}

// newCentralDirectoryHeader builds ZIP's central directory file header —
// present once per entry in the trailing central directory, distinguished
// from the local file header only by its signature and a handful of extra
// bookkeeping fields.
func newCentralDirectoryHeader() *formatspec.StructSpec {
	signature := formatspec.NewNumberAttribute[uint32]("signature").WithOrder(binary.LittleEndian).WithFinal(zipCentralDirectoryHeaderSignature)
	versionMadeBy := le16("version made by")
	versionNeeded := le16("version needed")
	flags := le16("flags")
	method := le16("method")
	modTime := le16("mod time")
	modDate := le16("mod date")
	crc32 := le32("crc-32")
	compressedSize := le32("compressed size")
	uncompressedSize := le32("uncompressed size")
	fileNameLength := le16("file name length").WithBind()
	extraFieldLength := le16("extra field length").WithBind()
	commentLength := le16("comment length").WithBind()
	diskNumberStart := le16("disk number start")
	internalAttrs := le16("internal attributes")
	externalAttrs := le32("external attributes")
	localHeaderOffset := le32("local header offset")

	fileName := slicedSection("file name", "name", sizeFromU16(fileNameLength))
	extraField := slicedSection("extra field", "extra", sizeFromU16(extraFieldLength))
	comment := slicedSection("comment", "comment", sizeFromU16(commentLength))

	header := &formatspec.StructSpec{
		Children: []formatspec.Spec{
			signature, versionMadeBy, versionNeeded, flags, method, modTime, modDate,
			crc32, compressedSize, uncompressedSize, fileNameLength, extraFieldLength,
			commentLength, diskNumberStart, internalAttrs, externalAttrs, localHeaderOffset,
			fileName, extraField, comment,
		},
	}
	return header.AsNamedResult("central-directory-header")
}

// newEndOfCentralDirectory builds the record closing a ZIP archive.
func newEndOfCentralDirectory() *formatspec.StructSpec {
	signature := formatspec.NewNumberAttribute[uint32]("signature").WithOrder(binary.LittleEndian).WithFinal(zipEndOfCentralDirectorySignature)
	diskNumber := le16("disk number")
	startDisk := le16("start disk")
	numEntriesDisk := le16("entries on this disk")
	numEntriesTotal := le16("entries total")
	centralDirSize := le32("central directory size")
	centralDirOffset := le32("central directory offset")
	commentLength := le16("comment length").WithBind()
	comment := slicedSection("comment", "comment", sizeFromU16(commentLength))

	header := &formatspec.StructSpec{
		Children: []formatspec.Spec{
			signature, diskNumber, startDisk, numEntriesDisk, numEntriesTotal,
			centralDirSize, centralDirOffset, commentLength, comment,
		},
	}
	return header.AsNamedResult("end-of-central-directory")
}

// NewZIP builds the ZIP format: a union of the three PK-signed record
// kinds, repeated until the input is exhausted. cache backs every entry's
// decoded data section; pass nil to get an in-process codec.MemCache.
func NewZIP(cache codec.DecodeCache) formatspec.Spec {
	if cache == nil {
		cache = codec.NewMemCache()
	}

	entry := &formatspec.UnionSpec{
		Name: "zip-record",
		Alternatives: []formatspec.Spec{
			newLocalFileHeader(cache),
			newCentralDirectoryHeader(),
			newEndOfCentralDirectory(),
		},
	}

	entries := &formatspec.ArraySpec{Name: "entries", Element: entry}

	archive := &formatspec.StructSpec{Children: []formatspec.Spec{entries}}
	archive.AsNamedResult("zip")
	archive.Kind = resulttree.Format
	return archive
}
