// Package decode drives one top-level decode or scan: it opens the root
// result builder, runs a format spec's Decode, freezes the result tree,
// and emits scanlog events along the way.
package decode
