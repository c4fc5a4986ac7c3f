// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Prober: runs ffprobe (through an injectable command runner)
//   - Result: parsed ffprobe output containing streams and format metadata
//
// The splitter only needs Prober.Duration; Inspect and the Result helpers are
// exposed for the doctor command and tests.
package ffprobe
