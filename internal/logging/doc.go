// Package logging assembles structured slog loggers and formatting helpers used
// across mixsplit.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so splitter code can tag log
// lines with the run ID and the description file being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Command results (scan findings, batch summaries) are written to stdout by
// the CLI; log records go to stderr so the two never interleave in pipes.
package logging
