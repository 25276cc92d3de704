package formatcatalog

// Entry is one catalog format description as parsed from YAML.
type Entry struct {
	// Name titles the format and the StructSpec it builds into.
	Name string `yaml:"name"`

	// Magic is the format's fixed leading byte sequence, hex-encoded
	// (e.g. "424D" for BMP's "BM").
	Magic string `yaml:"magic"`

	// Fields lists the fixed-width fields that follow Magic, in order.
	Fields []FieldEntry `yaml:"fields"`
}

// FieldEntry names one fixed-width field: Type is one of uint8/uint16/
// uint32/uint64/int8/int16/int32/int64, optionally suffixed "le" or "be"
// (default big-endian, matching the rest of the tree).
type FieldEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadError describes why a catalog file failed to load or build,
// preserving the path and underlying cause for diagnostics.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.File != "" {
		return e.File + ": " + e.Message
	}
	return e.Message
}

func (e *LoadError) Unwrap() error { return e.Cause }
