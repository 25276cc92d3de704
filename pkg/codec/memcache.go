package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/binlens/binlens/pkg/scanin"
)

// MemCache is an in-process DecodeCache backed by a map keyed on a
// blake2b fingerprint of (parent path, position, decoder identity). It
// holds decoded bytes for the lifetime of the process; pkg/codec/
// sqlitecache persists the same contract across process restarts.
type MemCache struct {
	mu      sync.Mutex
	entries map[[32]byte]*cacheEntry
}

type cacheEntry struct {
	once    sync.Once
	data    []byte
	totalIn int64
	err     error
}

// NewMemCache creates an empty MemCache.
func NewMemCache() *MemCache {
	return &MemCache{entries: make(map[[32]byte]*cacheEntry)}
}

func fingerprint(parent scanin.Input, position int64, decoderIdentity string) [32]byte {
	var posBuf [8]byte
	binary.BigEndian.PutUint64(posBuf[:], uint64(position))
	h := blake2b.Sum256(append(append([]byte(parent.Path()), posBuf[:]...), []byte(decoderIdentity)...))
	return h
}

// DecodeInput decodes at most once per fingerprint: concurrent callers for
// the same (parent, position, decoder) block on the same in-flight decode
// rather than duplicating work, and a later call after the first
// completed reuses its result without re-invoking decoder.
func (c *MemCache) DecodeInput(parent scanin.Input, position int64, decoder Decoder, decodedPath string) (*DecodeResult, error) {
	fp := fingerprint(parent, position, decoder.Identity())

	c.mu.Lock()
	entry, ok := c.entries[fp]
	if !ok {
		entry = &cacheEntry{}
		c.entries[fp] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		var buf bytes.Buffer
		totalIn, err := decoder.Decode(parent, position, &buf)
		if err != nil {
			entry.err = fmt.Errorf("codec: decode %s at %d: %w", decoder.Identity(), position, err)
			return
		}
		entry.data = buf.Bytes()
		entry.totalIn = totalIn
	})

	if entry.err != nil {
		return nil, entry.err
	}
	return &DecodeResult{
		Input:   scanin.NewBufferInput(entry.data, decodedPath, parent.Order()),
		TotalIn: entry.totalIn,
	}, nil
}
