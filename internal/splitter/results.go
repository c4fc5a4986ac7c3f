package splitter

import (
	"time"

	"mixsplit/internal/tracklist"
)

// FileState is the lifecycle position of one description file.
type FileState string

const (
	StateDiscovered FileState = "discovered"
	StateParsed     FileState = "parsed"
	// StateCut means every segment was attempted but the pair was not archived.
	StateCut      FileState = "cut"
	StateArchived FileState = "archived"
	// StateSkipped means no track entries were parsed; nothing was touched.
	StateSkipped FileState = "skipped"
	StateFailed  FileState = "failed"
)

// SegmentStatus is the outcome of one segment.
type SegmentStatus string

const (
	SegmentCut    SegmentStatus = "cut"
	SegmentExists SegmentStatus = "exists"
	SegmentFailed SegmentStatus = "failed"
	// SegmentInvalid marks a segment whose boundaries could not be derived.
	SegmentInvalid SegmentStatus = "invalid"
	SegmentDryRun  SegmentStatus = "dry_run"
)

// SegmentResult records what happened to one segment.
type SegmentResult struct {
	Index  int
	Start  int
	End    int
	Artist string
	Title  string
	Output string
	Status SegmentStatus
	// Command is the ffmpeg invocation a dry run would have executed.
	Command string
	Err     error
}

// FileResult records the processing of one description file.
type FileResult struct {
	Description string
	Audio       string
	State       FileState
	// Duration is the probed audio length in whole seconds.
	Duration        int
	Entries         int
	BlankLines      int
	UnparsableLines int
	Duplicates      []tracklist.Duplicate
	Segments        []SegmentResult
	// Retained is set when split.keep_failed kept the pair in the input directory.
	Retained bool
	Err      error
}

// Count returns the number of segments with the given status.
func (r FileResult) Count(status SegmentStatus) int {
	n := 0
	for _, seg := range r.Segments {
		if seg.Status == status {
			n++
		}
	}
	return n
}

// HasProblems reports whether any segment failed or was invalid.
func (r FileResult) HasProblems() bool {
	return r.Count(SegmentFailed) > 0 || r.Count(SegmentInvalid) > 0
}

// BatchReport is the outcome of one split run.
type BatchReport struct {
	RunID      string
	DryRun     bool
	InputDir   string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []FileResult
}

// Summary tallies a batch report.
type Summary struct {
	Files    int
	Archived int
	Cut      int
	Skipped  int
	Failed   int
	Segments map[SegmentStatus]int
}

// Summary counts files per final state and segments per status.
func (b BatchReport) Summary() Summary {
	s := Summary{Files: len(b.Files), Segments: make(map[SegmentStatus]int)}
	for _, file := range b.Files {
		switch file.State {
		case StateArchived:
			s.Archived++
		case StateCut:
			s.Cut++
		case StateSkipped:
			s.Skipped++
		case StateFailed:
			s.Failed++
		}
		for _, seg := range file.Segments {
			s.Segments[seg.Status]++
		}
	}
	return s
}

// Elapsed returns the wall time of the run.
func (b BatchReport) Elapsed() time.Duration {
	if b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}
