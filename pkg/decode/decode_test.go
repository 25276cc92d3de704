package decode

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/scanin"
	"github.com/binlens/binlens/pkg/scanlog"
)

type recordingLogger struct {
	events []scanlog.Event
}

func (r *recordingLogger) Log(e scanlog.Event) { r.events = append(r.events, e) }

func TestDecodeFreezesResultAndLogsCompletion(t *testing.T) {
	spec := formatspec.NewNumberAttribute[uint32]("magic").WithFinal(0xCAFEBABE)
	in := scanin.NewBufferInput([]byte{0xCA, 0xFE, 0xBA, 0xBE}, "test", binary.BigEndian)
	log := &recordingLogger{}

	result, err := Decode(context.Background(), "scan-1", spec, in, 0, log)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a non-nil result")
	}
	if result.End != 4 {
		t.Fatalf("expected result.End == 4, got %d", result.End)
	}

	foundCompletion := false
	for _, e := range log.events {
		if e.Category == scanlog.CategoryScanCompleted {
			foundCompletion = true
		}
	}
	if !foundCompletion {
		t.Fatal("expected a CategoryScanCompleted event to be logged")
	}
}

func TestDecodeRespectsCancelledContext(t *testing.T) {
	spec := formatspec.NewNumberAttribute[uint8]("v")
	in := scanin.NewBufferInput([]byte{0x01}, "test", binary.BigEndian)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Decode(ctx, "scan-1", spec, in, 0, nil); err == nil {
		t.Fatal("expected Decode to fail against a cancelled context")
	}
}

func TestScanPicksFirstMatchingCandidate(t *testing.T) {
	a := formatspec.NewNumberAttribute[uint8]("a").WithFinal(0x01)
	b := formatspec.NewNumberAttribute[uint8]("b").WithFinal(0x02)
	in := scanin.NewBufferInput([]byte{0x02}, "test", binary.BigEndian)
	log := &recordingLogger{}

	result, chosen, err := Scan(context.Background(), []formatspec.Spec{a, b}, in, 0, log)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if chosen != formatspec.Spec(b) {
		t.Fatal("expected the second candidate to be chosen")
	}
	if result == nil {
		t.Fatal("expected a non-nil result")
	}

	sawMatched := false
	for _, e := range log.events {
		if e.Category == scanlog.CategoryFormatMatched {
			sawMatched = true
		}
	}
	if !sawMatched {
		t.Fatal("expected a CategoryFormatMatched event")
	}
}

func TestScanReturnsErrNoMatch(t *testing.T) {
	a := formatspec.NewNumberAttribute[uint8]("a").WithFinal(0x01)
	in := scanin.NewBufferInput([]byte{0x99}, "test", binary.BigEndian)
	log := &recordingLogger{}

	_, _, err := Scan(context.Background(), []formatspec.Spec{a}, in, 0, log)
	if err != ErrNoMatch {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	sawNoMatch := false
	for _, e := range log.events {
		if e.Category == scanlog.CategoryNoFormatMatched {
			sawNoMatch = true
		}
	}
	if !sawNoMatch {
		t.Fatal("expected a CategoryNoFormatMatched event")
	}
}
