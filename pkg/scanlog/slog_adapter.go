package scanlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes scan events to an slog.Logger. Useful during
// development to see scan progress in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("scan_id", event.ScanID),
		slog.String("phase", event.Phase.String()),
		slog.String("category", event.Category.String()),
	}
	if event.InputPath != "" {
		attrs = append(attrs, slog.String("input", event.InputPath))
	}
	if event.FormatName != "" {
		attrs = append(attrs, slog.String("format", event.FormatName))
	}
	attrs = append(attrs, slog.Int64("position", event.Position))
	if event.Status != nil {
		attrs = append(attrs,
			slog.Bool("fatal", event.Status.Fatal),
			slog.String("status_message", event.Status.Message),
		)
	}
	if event.Duration != nil {
		attrs = append(attrs, slog.Duration("duration", *event.Duration))
	}
	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "scan", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
