// Package log provides structured protocol logging for the MotionMount
// driver.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events: every line exchanged with the device, session
// state changes and protocol anomalies. It is separate from operational
// logging (slog) - protocol capture provides a complete machine-readable
// event trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/mount/session.mlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/mount/session.mlog"),
//	)
//
// # File Format
//
// Log files use CBOR encoding with integer keys for compactness. Reader
// streams a capture file back into events.
package log
