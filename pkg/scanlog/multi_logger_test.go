package scanlog

import (
	"testing"
	"time"
)

type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}
	mock3 := &mockLogger{}

	multi := NewMultiLogger(mock1, mock2, mock3)

	event := Event{
		Timestamp: time.Now(),
		ScanID:    "scan-123",
		Phase:     PhaseDecode,
		Category:  CategoryFormatMatched,
	}

	multi.Log(event)

	for i, mock := range []*mockLogger{mock1, mock2, mock3} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].ScanID != "scan-123" {
			t.Errorf("logger %d: ScanID = %q, want %q", i, mock.events[0].ScanID, "scan-123")
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()

	multi.Log(Event{
		Timestamp: time.Now(),
		ScanID:    "scan-123",
		Phase:     PhaseProbe,
		Category:  CategoryScanStarted,
	})
}

func TestMultiLoggerSingleLogger(t *testing.T) {
	mock := &mockLogger{}
	multi := NewMultiLogger(mock)

	multi.Log(Event{
		Timestamp: time.Now(),
		ScanID:    "scan-456",
		Phase:     PhaseDecode,
		Category:  CategoryStatus,
	})

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}
	if mock.events[0].ScanID != "scan-456" {
		t.Errorf("ScanID = %q, want %q", mock.events[0].ScanID, "scan-456")
	}
}

func TestMultiLoggerInterfaceSatisfaction(t *testing.T) {
	var _ Logger = (*MultiLogger)(nil)
}
