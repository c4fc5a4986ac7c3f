package tracklist

import (
	"errors"
	"fmt"
)

// ErrNonIncreasing reports a segment whose end is not after its start, or
// whose start falls before an earlier entry's start. Unsorted timestamps,
// repeated timestamps and starts past the end of the audio all produce it.
var ErrNonIncreasing = errors.New("non-increasing segment boundary")

// Segment is the time range of one entry within the source audio.
type Segment struct {
	Index  int
	Start  int
	End    int
	Artist string
	Title  string
	// Err is set when the boundaries could not be derived. Such a segment
	// must not be cut.
	Err error
}

// Duration returns End-Start in seconds.
func (s Segment) Duration() int {
	return s.End - s.Start
}

// Valid reports whether the segment can be handed to a cutter.
func (s Segment) Valid() bool {
	return s.Err == nil
}

// Segments derives one segment per entry. Entry i ends where entry i+1
// starts; the last entry ends at totalSeconds. Valid segments never overlap.
func Segments(entries []Entry, totalSeconds int) []Segment {
	starts := make([]int, len(entries))
	errs := make([]error, len(entries))
	for i, entry := range entries {
		starts[i], errs[i] = Seconds(entry.Timestamp)
	}

	latest, seen := 0, false

	segments := make([]Segment, len(entries))
	for i, entry := range entries {
		seg := Segment{
			Index:  i,
			Start:  starts[i],
			Artist: entry.Artist,
			Title:  entry.Title,
		}
		switch {
		case errs[i] != nil:
			seg.Err = fmt.Errorf("track %d start: %w", i, errs[i])
		case seen && starts[i] < latest:
			seg.Err = fmt.Errorf("%w: track %d starts at %s, before an earlier track at %s",
				ErrNonIncreasing, i, FormatSeconds(starts[i]), FormatSeconds(latest))
		case i+1 < len(entries) && errs[i+1] != nil:
			seg.Err = fmt.Errorf("track %d end: %w", i, errs[i+1])
		case i+1 < len(entries):
			seg.End = starts[i+1]
		default:
			seg.End = totalSeconds
		}
		if seg.Err == nil && seg.End <= seg.Start {
			seg.Err = fmt.Errorf("%w: track %d starts at %s and ends at %s",
				ErrNonIncreasing, i, FormatSeconds(seg.Start), FormatSeconds(seg.End))
		}
		if errs[i] == nil && (!seen || starts[i] > latest) {
			latest, seen = starts[i], true
		}
		segments[i] = seg
	}
	return segments
}
