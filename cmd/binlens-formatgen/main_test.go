package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestYamlPathsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bmp.yaml")
	if err := os.WriteFile(path, []byte("name: x\nmagic: \"00\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	paths, err := yamlPaths(path)
	if err != nil {
		t.Fatalf("yamlPaths failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("expected [%s], got %v", path, paths)
	}
}

func TestYamlPathsDirectorySkipsNonYAML(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	paths, err := yamlPaths(dir)
	if err != nil {
		t.Fatalf("yamlPaths failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 YAML files, got %d: %v", len(paths), paths)
	}
}

func TestGoFileName(t *testing.T) {
	if got := goFileName("bmp-header"); got != "bmp_header" {
		t.Errorf("goFileName: got %q", got)
	}
}
