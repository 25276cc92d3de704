// Package formats holds a handful of concrete format definitions built
// entirely out of pkg/formatspec's combinators — no bespoke Spec
// implementations, just trees of StructSpec/ArraySpec/UnionSpec/
// ConditionalSpec/attributes, the way a hand-written format description is
// expected to look. pkg/formatcatalog builds the same shapes from YAML at
// runtime; these exist as built-in, always-available candidates and as a
// worked example for anyone writing their own.
package formats
