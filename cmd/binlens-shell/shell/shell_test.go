package shell_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/binlens/binlens/cmd/binlens-shell/shell"
	"github.com/binlens/binlens/pkg/decode"
	"github.com/binlens/binlens/pkg/formats"
	"github.com/binlens/binlens/pkg/resulttree"
	"github.com/binlens/binlens/pkg/scanin"
)

func pngWithOneChunk() []byte {
	var b []byte
	b = append(b, 0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a) // signature
	b = append(b, 0x00, 0x00, 0x00, 0x00)                        // length = 0
	b = append(b, 'I', 'E', 'N', 'D')
	b = append(b, 0x00, 0x00, 0x00, 0x00) // crc
	return b
}

func decodedPNG(t *testing.T, out *bytes.Buffer) (*shell.Shell, *resulttree.Result) {
	t.Helper()
	data := pngWithOneChunk()
	in := scanin.NewBufferInput(data, "t.png", binary.BigEndian)

	result, err := decode.Decode(context.Background(), "t", formats.NewPNG(), in, 0, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	sh, err := shell.NewWithOutput(result, out)
	if err != nil {
		t.Fatalf("shell.NewWithOutput failed: %v", err)
	}
	return sh, result
}

func TestShellCdAndPwd(t *testing.T) {
	var out bytes.Buffer
	sh, result := decodedPNG(t, &out)

	if len(result.Children) != 1 {
		t.Fatalf("expected 1 child (the chunk), got %d", len(result.Children))
	}

	if !sh.Exec("ls") {
		t.Fatal("ls should not end the session")
	}
	if !strings.Contains(out.String(), "chunk") {
		t.Fatalf("expected ls output to mention the chunk, got:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("cd 0")
	sh.Exec("pwd")
	if !strings.Contains(out.String(), "/png/chunk") {
		t.Fatalf("expected pwd to show /png/chunk, got:\n%s", out.String())
	}

	out.Reset()
	sh.Exec("cd ..")
	sh.Exec("pwd")
	if strings.TrimSpace(out.String()) != "/png" {
		t.Fatalf("expected pwd to show /png after cd .., got:\n%s", out.String())
	}

	out.Reset()
	if sh.Exec("quit") {
		t.Fatal("quit should end the session")
	}
}

func TestShellCdRejectsOutOfRangeIndex(t *testing.T) {
	var out bytes.Buffer
	sh, _ := decodedPNG(t, &out)

	sh.Exec("cd 5")
	if !strings.Contains(out.String(), "no such child") {
		t.Fatalf("expected an out-of-range error, got:\n%s", out.String())
	}
}
