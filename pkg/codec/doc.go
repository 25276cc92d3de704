// Package codec defines the external-collaborator contracts an
// EncodedFormatSpec uses to turn a compressed/encoded region into a
// derived scanin.Input: a streaming Decoder and a DecodeCache that makes
// repeated decodes of the same region idempotent. Concrete decoders
// (pkg/codec/flatecodec) and caches (pkg/codec/sqlitecache, MemCache here)
// implement these contracts; formatspec only ever depends on the
// interfaces.
package codec
