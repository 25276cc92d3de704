// Command binlens-scan probes a file against the built-in format registry
// plus any YAML catalog entries, decodes the first match, and prints the
// result tree as plain text.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/decode"
	"github.com/binlens/binlens/pkg/formatcatalog"
	"github.com/binlens/binlens/pkg/formats"
	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/scanin"
	"github.com/binlens/binlens/pkg/scanlog"
)

func main() {
	catalogDir := flag.String("catalog", "", "directory of additional *.yaml format definitions")
	pos := flag.Int64("pos", 0, "byte offset to start scanning at")
	logPath := flag.String("log", "", "path to append a CBOR scan-event trace to")
	verbose := flag.Bool("verbose", false, "log scan events to stderr as they happen")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: binlens-scan [-catalog dir] [-pos n] [-log path] [-verbose] <file>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *catalogDir, *pos, *logPath, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "binlens-scan: %v\n", err)
		os.Exit(1)
	}
}

func run(path, catalogDir string, pos int64, logPath string, verbose bool) error {
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

	log, closeLog, err := buildLogger(logPath, verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	result, spec, err := decode.Scan(context.Background(), candidates, in, pos, log)
	if err != nil {
		return fmt.Errorf("scanning %s at %d: %w", path, pos, err)
	}
	_ = spec

	out := render.NewTextRenderer(os.Stdout)
	if err := render.Render(result, out); err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	return nil
}

// buildLogger assembles whichever combination of console and file logging
// the flags asked for, collapsing to scanlog.NoopLogger when neither is set.
func buildLogger(logPath string, verbose bool) (scanlog.Logger, func(), error) {
	var loggers []scanlog.Logger
	noop := func() {}

	if verbose {
		loggers = append(loggers, scanlog.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	closeLog := noop
	if logPath != "" {
		fileLogger, err := scanlog.NewFileLogger(logPath)
		if err != nil {
			return nil, noop, fmt.Errorf("opening log %s: %w", logPath, err)
		}
		loggers = append(loggers, fileLogger)
		closeLog = func() { _ = fileLogger.Close() }
	}

	switch len(loggers) {
	case 0:
		return scanlog.NoopLogger{}, closeLog, nil
	case 1:
		return loggers[0], closeLog, nil
	default:
		return scanlog.NewMultiLogger(loggers...), closeLog, nil
	}
}
