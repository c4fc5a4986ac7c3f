// Package ffmpeg cuts time ranges out of audio files with the ffmpeg CLI.
//
// Cuts default to codec copy so the audio stream is never re-encoded. The
// Cutter never overwrites: it passes -n so ffmpeg itself refuses an existing
// output, and callers are expected to check for existing files first.
package ffmpeg
