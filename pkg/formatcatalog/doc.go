// Package formatcatalog loads declarative format descriptions from YAML —
// magic byte plus fixed-field structs simple enough to need no custom Go.
// cmd/binlens-scan merges the specs it produces with the built-in
// definitions in pkg/formats; cmd/binlens-formatgen reads the same YAML
// shape to emit a compiled Go source file instead.
package formatcatalog
