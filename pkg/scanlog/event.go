package scanlog

import "time"

// Event is one scan-level log event. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ScanID identifies the top-level Scan call this event belongs to.
	ScanID string `cbor:"2,keyasint"`

	// Phase is the stage of the scan/decode pipeline that produced the
	// event.
	Phase Phase `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// InputPath identifies the Input being scanned or decoded (see
	// scanin.Input.Path).
	InputPath string `cbor:"5,keyasint,omitempty"`

	// Position is the byte offset the event concerns.
	Position int64 `cbor:"6,keyasint,omitempty"`

	// FormatName names the format spec involved, when applicable.
	FormatName string `cbor:"7,keyasint,omitempty"`

	// Status carries a decode status's detail for CategoryStatus events.
	Status *StatusEventData `cbor:"8,keyasint,omitempty"`

	// Duration is populated for CategoryScanCompleted events.
	Duration *time.Duration `cbor:"9,keyasint,omitempty"`
}

// Phase is the stage of the scan/decode pipeline an event was captured in.
type Phase uint8

const (
	// PhaseProbe is format-candidate matching (Scan's Matches calls).
	PhaseProbe Phase = 0
	// PhaseDecode is a Spec's Decode call.
	PhaseDecode Phase = 1
	// PhaseRender is a Spec's Render call.
	PhaseRender Phase = 2
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseProbe:
		return "PROBE"
	case PhaseDecode:
		return "DECODE"
	case PhaseRender:
		return "RENDER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the kind of event.
type Category uint8

const (
	// CategoryScanStarted marks the beginning of a Scan call.
	CategoryScanStarted Category = 0
	// CategoryFormatMatched records a candidate format whose Matches
	// succeeded at the scanned position.
	CategoryFormatMatched Category = 1
	// CategoryNoFormatMatched records that no candidate matched.
	CategoryNoFormatMatched Category = 2
	// CategoryStatus records a DecodeStatus (warning or fatal) attached
	// while decoding a region.
	CategoryStatus Category = 3
	// CategoryScanCompleted marks the end of a Scan or Decode call.
	CategoryScanCompleted Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryScanStarted:
		return "SCAN_STARTED"
	case CategoryFormatMatched:
		return "FORMAT_MATCHED"
	case CategoryNoFormatMatched:
		return "NO_FORMAT_MATCHED"
	case CategoryStatus:
		return "STATUS"
	case CategoryScanCompleted:
		return "SCAN_COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// StatusEventData captures a resulttree.DecodeStatus for logging.
type StatusEventData struct {
	// Fatal mirrors resulttree.DecodeStatus.Fatal.
	Fatal bool `cbor:"1,keyasint"`

	// Message mirrors resulttree.DecodeStatus.Message.
	Message string `cbor:"2,keyasint"`
}
