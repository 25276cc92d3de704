package decode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/binlens/binlens/pkg/formatspec"
	"github.com/binlens/binlens/pkg/resultctx"
	"github.com/binlens/binlens/pkg/resulttree"
	"github.com/binlens/binlens/pkg/scanin"
	"github.com/binlens/binlens/pkg/scanlog"
)

// ErrNoMatch is returned by Scan when no candidate spec matches at pos.
var ErrNoMatch = errors.New("decode: no candidate format matched")

func logger(l scanlog.Logger) scanlog.Logger {
	if l == nil {
		return scanlog.NoopLogger{}
	}
	return l
}

// Decode runs spec against in starting at pos and freezes the resulting
// tree. scanID identifies the enclosing Scan call this decode belongs to,
// or "" for a standalone decode outside any Scan.
func Decode(ctx context.Context, scanID string, spec formatspec.Spec, in scanin.Input, pos int64, log scanlog.Logger) (*resulttree.Result, error) {
	log = logger(log)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	root := resulttree.NewRoot(spec, in, in.Order(), pos, resultctx.NewRoot())
	root.SetRenderable(spec)

	start := time.Now()
	consumed, err := spec.Decode(root, pos)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := root.UpdateEnd(pos + consumed); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	duration := time.Since(start)

	if st := root.Status(); st != nil {
		log.Log(scanlog.Event{
			Timestamp: start,
			ScanID:    scanID,
			Phase:     scanlog.PhaseDecode,
			Category:  scanlog.CategoryStatus,
			InputPath: in.Path(),
			Position:  pos,
			Status:    &scanlog.StatusEventData{Fatal: st.Fatal, Message: st.Message},
		})
	}

	result := root.ToResult(nil)
	log.Log(scanlog.Event{
		Timestamp: time.Now(),
		ScanID:    scanID,
		Phase:     scanlog.PhaseDecode,
		Category:  scanlog.CategoryScanCompleted,
		InputPath: in.Path(),
		Position:  pos,
		Duration:  &duration,
	})
	return result, nil
}

// Scan probes candidates in order at pos and decodes the first one whose
// Matches succeeds against MatchSize() bytes read there. It mints a fresh
// scan ID for the returned result's log trail.
func Scan(ctx context.Context, candidates []formatspec.Spec, in scanin.Input, pos int64, log scanlog.Logger) (*resulttree.Result, formatspec.Spec, error) {
	log = logger(log)
	scanID := uuid.NewString()

	log.Log(scanlog.Event{
		Timestamp: time.Now(),
		ScanID:    scanID,
		Phase:     scanlog.PhaseProbe,
		Category:  scanlog.CategoryScanStarted,
		InputPath: in.Path(),
		Position:  pos,
	})

	for _, spec := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("decode: scan: %w", err)
		}
		size := spec.MatchSize()
		if int64(size) > in.Size()-pos {
			continue
		}
		buf, err := in.CachedRead(pos, size, in.Order())
		if err != nil {
			continue
		}
		if !spec.Matches(buf) {
			continue
		}

		log.Log(scanlog.Event{
			Timestamp: time.Now(),
			ScanID:    scanID,
			Phase:     scanlog.PhaseProbe,
			Category:  scanlog.CategoryFormatMatched,
			InputPath: in.Path(),
			Position:  pos,
		})

		result, err := Decode(ctx, scanID, spec, in, pos, log)
		if err != nil {
			return nil, nil, err
		}
		return result, spec, nil
	}

	log.Log(scanlog.Event{
		Timestamp: time.Now(),
		ScanID:    scanID,
		Phase:     scanlog.PhaseProbe,
		Category:  scanlog.CategoryNoFormatMatched,
		InputPath: in.Path(),
		Position:  pos,
	})
	return nil, nil, ErrNoMatch
}
