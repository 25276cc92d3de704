// Command binlens-formatgen reads the same YAML format-definition shape
// pkg/formatcatalog loads at runtime and emits an equivalent compiled Go
// source file — a StructSpec literal with no YAML parsing left at runtime,
// for formats worth baking into a build instead of shipping alongside it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/binlens/binlens/pkg/formatcatalog"
)

func main() {
	input := flag.String("input", "", "YAML format definition file, or a directory of them")
	output := flag.String("output", "", "output directory for generated Go files")
	pkgName := flag.String("package", "formatgen", "package name for the generated files")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: binlens-formatgen -input <file|dir> -output <dir> [-package name]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*input, *output, *pkgName); err != nil {
		fmt.Fprintf(os.Stderr, "binlens-formatgen: %v\n", err)
		os.Exit(1)
	}
}

func run(input, outputDir, pkgName string) error {
	paths, err := yamlPaths(input)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.yaml/*.yml files found under %s", input)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for _, path := range paths {
		entry, err := formatcatalog.LoadEntry(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}

		code, err := GenerateEntry(entry, pkgName)
		if err != nil {
			return fmt.Errorf("generating %s: %w", entry.Name, err)
		}

		outPath := filepath.Join(outputDir, goFileName(entry.Name)+"_gen.go")
		if err := writeFormatted(outPath, code); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("  generated %s\n", outPath)
	}
	return nil
}

// yamlPaths returns the *.yaml/*.yml files to process: input itself if it
// names a file, or every matching file directly under it if it names a
// directory.
func yamlPaths(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(input, e.Name()))
		}
	}
	return paths, nil
}

// writeFormatted formats generated Go source with goimports before writing
// it; on a formatting failure it writes the unformatted source alongside
// under a .broken suffix so the generator's output can be inspected.
func writeFormatted(path, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

// goFileName converts a format name like "bmp-header" into "bmp_header".
func goFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
