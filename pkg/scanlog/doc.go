// Package scanlog provides structured event logging for format scans.
//
// This package defines the Logger interface and Event types for capturing
// scan-level events — which formats were probed, which matched, what
// decode status a region ended with. It is separate from operational
// logging (slog): scan logging produces a complete, machine-readable
// trace of one scan for later analysis or replay.
//
// # Basic usage
//
//	// For development: log to console via slog
//	logger := scanlog.NewSlogAdapter(slog.Default())
//
//	// For an audit trail: write to a binary file
//	logger, _ := scanlog.NewFileLogger("/var/log/binlens/scan.slog")
//
//	// Both at once
//	logger := scanlog.NewMultiLogger(
//		scanlog.NewSlogAdapter(slog.Default()),
//		fileLogger,
//	)
//
// # File format
//
// Log files use CBOR encoding with a .slog extension.
package scanlog
