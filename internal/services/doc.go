// Package services defines shared utilities consumed by the pipeline stage
// handlers and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (bad input or configuration vs. transient I/O) into CLI exit codes.
//
// Use these helpers when wiring new stage logic so error reporting stays
// uniform across the pipeline.
package services
