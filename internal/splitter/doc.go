// Package splitter cuts long mixes into per-track files.
//
// Each description file in the input directory is paired with the audio file
// sharing its base name. The description is parsed into track entries, the
// audio duration is probed, every segment is cut with ffmpeg, and the pair is
// moved to the archive directory. Files are handled one at a time in sorted
// order and segments in parsed order. A failure is recorded in the file's
// result and the batch continues; only a failure to list the input directory
// stops the run.
//
// Outputs that already exist are never overwritten, so rerunning a batch
// skips work that was already done.
package splitter
