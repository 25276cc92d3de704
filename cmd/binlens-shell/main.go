// Command binlens-shell scans and decodes a file, then drops into an
// interactive shell for browsing the resulting tree.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/binlens/binlens/cmd/binlens-shell/shell"
	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/decode"
	"github.com/binlens/binlens/pkg/formatcatalog"
	"github.com/binlens/binlens/pkg/formats"
	"github.com/binlens/binlens/pkg/scanin"
)

func main() {
	catalogDir := flag.String("catalog", "", "directory of additional *.yaml format definitions")
	pos := flag.Int64("pos", 0, "byte offset to start scanning at")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: binlens-shell [-catalog dir] [-pos n] <file>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *catalogDir, *pos); err != nil {
		fmt.Fprintf(os.Stderr, "binlens-shell: %v\n", err)
		os.Exit(1)
	}
}

func run(path, catalogDir string, pos int64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	in := scanin.NewFileInput(f, info.Size(), path, binary.BigEndian)

	cache := codec.NewMemCache()
	candidates := formats.Registry(cache)
	if catalogDir != "" {
		catalogSpecs, err := formatcatalog.Load(catalogDir)
		if err != nil {
			return fmt.Errorf("loading catalog %s: %w", catalogDir, err)
		}
		candidates = append(candidates, catalogSpecs...)
	}

	result, _, err := decode.Scan(context.Background(), candidates, in, pos, nil)
	if err != nil {
		return fmt.Errorf("scanning %s at %d: %w", path, pos, err)
	}

	sh, err := shell.New(result)
	if err != nil {
		return err
	}
	sh.Run()
	return nil
}
