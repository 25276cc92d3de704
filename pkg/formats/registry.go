package formats

import (
	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/formatspec"
)

// Registry returns the built-in candidate formats, in probe order. cache
// backs every format's encoded sections; pass nil to have each format that
// needs one fall back to its own in-process codec.MemCache.
func Registry(cache codec.DecodeCache) []formatspec.Spec {
	return []formatspec.Spec{
		NewPNG(),
		NewZIP(cache),
		NewCBORDoc(),
	}
}
