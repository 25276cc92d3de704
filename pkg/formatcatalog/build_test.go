package formatcatalog_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binlens/binlens/pkg/decode"
	"github.com/binlens/binlens/pkg/formatcatalog"
	"github.com/binlens/binlens/pkg/scanin"
)

func TestBuildDecodesBMPHeader(t *testing.T) {
	entry, err := formatcatalog.ParseEntry([]byte(bmpHeaderYAML))
	require.NoError(t, err)

	spec, err := formatcatalog.Build(entry)
	require.NoError(t, err)

	data := []byte{
		0x42, 0x4d, // "BM"
		0x36, 0x00, 0x00, 0x00, // size = 54, little-endian
		0x00, 0x00, 0x00, 0x00, // reserved
		0x36, 0x00, 0x00, 0x00, // dataOffset = 54, little-endian
	}
	in := scanin.NewBufferInput(data, "test.bmp", binary.BigEndian)

	result, err := decode.Decode(context.Background(), "t", spec, in, 0, nil)
	require.NoError(t, err)
	require.Nil(t, result.Status)
	require.Equal(t, int64(len(data)), result.End)
	require.Equal(t, "bmp-header", result.Title)
	require.Len(t, result.Sections, 4)
}

func TestBuildRejectsUnsupportedFieldType(t *testing.T) {
	entry, err := formatcatalog.ParseEntry([]byte(`
name: broken
magic: "424D"
fields:
  - {name: bad, type: float32}
`))
	require.NoError(t, err)

	_, err = formatcatalog.Build(entry)
	require.Error(t, err)
}

func TestBuildRejectsInvalidMagicHex(t *testing.T) {
	entry, err := formatcatalog.ParseEntry([]byte(`
name: broken
magic: "not-hex"
`))
	require.NoError(t, err)

	_, err = formatcatalog.Build(entry)
	require.Error(t, err)
}
