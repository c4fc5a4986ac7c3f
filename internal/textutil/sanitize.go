package textutil

import (
	"strconv"
	"strings"
)

var pathSeparatorStripper = strings.NewReplacer("/", "", "\\", "")

// StripPathSeparators removes forward and backward slashes so a label can be
// used as a single path segment. Other characters are left alone.
func StripPathSeparators(name string) string {
	return pathSeparatorStripper.Replace(name)
}

// TrackFileName builds "<artist> - <title> (<index>).<ext>" with path
// separators stripped from artist and title.
func TrackFileName(artist, title string, index int, ext string) string {
	var b strings.Builder
	b.WriteString(StripPathSeparators(artist))
	b.WriteString(" - ")
	b.WriteString(StripPathSeparators(title))
	b.WriteString(" (")
	b.WriteString(strconv.Itoa(index))
	b.WriteString(").")
	b.WriteString(strings.TrimPrefix(ext, "."))
	return b.String()
}
