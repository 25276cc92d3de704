// Package sqlitecache is a codec.DecodeCache backed by a SQLite file, so
// re-rendering a previously scanned input across process restarts does
// not re-run a decompressor. It is an external-collaborator implementation
// of the core's DecodeCache contract, never imported by pkg/formatspec
// directly.
package sqlitecache

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/binlens/binlens/pkg/codec"
	"github.com/binlens/binlens/pkg/scanin"
)

const schema = `
CREATE TABLE IF NOT EXISTS decoded_inputs (
	fingerprint BLOB PRIMARY KEY,
	decoded_path TEXT NOT NULL,
	total_in INTEGER NOT NULL,
	data BLOB NOT NULL
)`

// Cache is a codec.DecodeCache persisting decoded regions to a SQLite
// database file.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) a SQLite-backed Cache at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitecache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitecache: migrate %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

func fingerprint(parent scanin.Input, position int64, decoderIdentity string) []byte {
	var posBuf [8]byte
	binary.BigEndian.PutUint64(posBuf[:], uint64(position))
	sum := blake2b.Sum256(append(append([]byte(parent.Path()), posBuf[:]...), []byte(decoderIdentity)...))
	return sum[:]
}

// DecodeInput looks up fingerprint(parent, position, decoder.Identity())
// in the database; on a miss it runs decoder once, persists the result,
// and returns it. Calls on the same Cache hold its mutex from lookup to
// insert, so concurrent callers in one process never decode the same
// fingerprint twice.
func (c *Cache) DecodeInput(parent scanin.Input, position int64, decoder codec.Decoder, decodedPath string) (*codec.DecodeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fp := fingerprint(parent, position, decoder.Identity())

	var data []byte
	var totalIn int64
	row := c.db.QueryRow(`SELECT data, total_in FROM decoded_inputs WHERE fingerprint = ?`, fp)
	switch err := row.Scan(&data, &totalIn); err {
	case nil:
		return &codec.DecodeResult{
			Input:   scanin.NewBufferInput(data, decodedPath, parent.Order()),
			TotalIn: totalIn,
		}, nil
	case sql.ErrNoRows:
		// fall through to decode
	default:
		return nil, fmt.Errorf("sqlitecache: lookup: %w", err)
	}

	var buf bytes.Buffer
	n, err := decoder.Decode(parent, position, &buf)
	if err != nil {
		return nil, fmt.Errorf("sqlitecache: decode %s at %d: %w", decoder.Identity(), position, err)
	}
	data = buf.Bytes()
	totalIn = n

	if _, err := c.db.Exec(
		`INSERT OR IGNORE INTO decoded_inputs (fingerprint, decoded_path, total_in, data) VALUES (?, ?, ?, ?)`,
		fp, decodedPath, totalIn, data,
	); err != nil {
		return nil, fmt.Errorf("sqlitecache: persist: %w", err)
	}

	return &codec.DecodeResult{
		Input:   scanin.NewBufferInput(data, decodedPath, parent.Order()),
		TotalIn: totalIn,
	}, nil
}
