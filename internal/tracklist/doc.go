// Package tracklist turns the free-form text of a mix description into
// per-track time ranges.
//
// It has no filesystem or process dependencies: callers hand it lines of text
// and a total duration and get back entries and segments, which keeps the
// parsing rules testable in isolation.
//
// Key pieces:
//   - HasTimestamp: loose detector used by the scanner
//   - Parse: extracts ordered Entries and classifies every input line
//   - Seconds: converts "m:ss" / "h:mm:ss" tokens to whole seconds
//   - Segments: derives start/end boundaries for each entry
package tracklist
