package formatcatalog

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/binlens/binlens/pkg/formatspec"
)

// ParseEntry parses one catalog entry from YAML bytes.
func ParseEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if e.Name == "" {
		return nil, &LoadError{Message: "format name is required"}
	}
	if e.Magic == "" {
		return nil, &LoadError{Message: "magic is required"}
	}
	return &e, nil
}

// LoadEntry loads and parses one catalog entry from path.
func LoadEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	e, err := ParseEntry(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return e, nil
}

// Load builds a formatspec.Spec for every *.yaml/*.yml file directly under
// dir, in directory-listing order.
func Load(dir string) ([]formatspec.Spec, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to read directory", Cause: err}
	}

	var specs []formatspec.Spec
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, de.Name())
		entry, err := LoadEntry(path)
		if err != nil {
			return nil, err
		}

		spec, err := Build(entry)
		if err != nil {
			return nil, &LoadError{File: path, Message: "failed to build format spec", Cause: err}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
