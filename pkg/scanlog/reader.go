package scanlog

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering log events when replaying a log
// file. Empty/nil fields match all events for that criterion.
type Filter struct {
	// ScanID filters by exact scan ID match.
	ScanID string

	// Phase filters by pipeline phase.
	Phase *Phase

	// Category filters by event category.
	Category *Category
}

func (f *Filter) matches(event Event) bool {
	if f.ScanID != "" && event.ScanID != f.ScanID {
		return false
	}
	if f.Phase != nil && event.Phase != *f.Phase {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	return true
}

// Reader reads scan log events from a CBOR-encoded file. It provides an
// iterator interface for streaming large files.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads only events matching
// filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next event matching the filter, or io.EOF once the
// file is exhausted.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if err == io.EOF {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
