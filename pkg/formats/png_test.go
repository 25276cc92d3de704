package formats

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/binlens/binlens/pkg/decode"
	"github.com/binlens/binlens/pkg/scanin"
)

func pngIENDOnly() []byte {
	buf := make([]byte, 0, 20)
	buf = append(buf, 0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a) // signature
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)                        // length = 0
	buf = append(buf, 0x49, 0x45, 0x4e, 0x44)                        // "IEND"
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)                        // crc
	return buf
}

func TestPNGDecodesSignatureAndChunk(t *testing.T) {
	in := scanin.NewBufferInput(pngIENDOnly(), "test.png", binary.BigEndian)

	result, err := decode.Decode(context.Background(), "t", NewPNG(), in, 0, nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Status != nil {
		t.Fatalf("unexpected status: %+v", result.Status)
	}
	if result.End != 20 {
		t.Fatalf("expected end 20, got %d", result.End)
	}
	if len(result.Children) != 1 {
		t.Fatalf("expected one chunk child, got %d", len(result.Children))
	}
	if result.Children[0].Title != "chunk" {
		t.Fatalf("expected chunk title %q, got %q", "chunk", result.Children[0].Title)
	}
}

func TestPNGRejectsBadSignature(t *testing.T) {
	data := pngIENDOnly()
	data[0] = 0x00
	in := scanin.NewBufferInput(data, "test.png", binary.BigEndian)

	result, err := decode.Decode(context.Background(), "t", NewPNG(), in, 0, nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result.Status == nil || !result.Status.Fatal {
		t.Fatal("expected a fatal status for a bad signature")
	}
}
