// Package fileutil moves mix files into the archive directory and provides
// the verified copy used when a rename crosses filesystems.
package fileutil
