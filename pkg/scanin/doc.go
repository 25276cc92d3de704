// Package scanin provides a read-only, random-access view over the bytes a
// format spec decodes. An Input never mutates the bytes underneath it; it
// only ever produces new, derived Inputs (Slice) or a fixed window read.
package scanin
