package tracklist

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const timestampToken = `\d{1,2}:\d{1,2}(?::\d{1,2})?`

var (
	// "0:00 - 3:12 artist - title": the first timestamp is the track start.
	rangeLinePattern = regexp.MustCompile(`^(` + timestampToken + `)\s*-\s*` + timestampToken + `\s+(.+?)\s+-\s+(.+)$`)
	// "0:00 artist - title"
	trackLinePattern = regexp.MustCompile(`^(` + timestampToken + `)\s+(.+?)\s+-\s+(.+)$`)
)

// LineKind classifies a single description line.
type LineKind int

const (
	LineTrack LineKind = iota
	LineBlank
	LineUnparsable
)

func (k LineKind) String() string {
	switch k {
	case LineTrack:
		return "track"
	case LineBlank:
		return "blank"
	case LineUnparsable:
		return "unparsable"
	default:
		return "unknown"
	}
}

// Entry is one track line: where it starts and what it is called.
type Entry struct {
	Timestamp string
	Artist    string
	Title     string
	// Line is the 1-based line number in the source document.
	Line int
}

// Label renders the entry as "artist - title".
func (e Entry) Label() string {
	return e.Artist + " - " + e.Title
}

// Line records how one input line was classified.
type Line struct {
	Number int
	Kind   LineKind
	Text   string
}

// Result is the outcome of parsing a description document.
type Result struct {
	Entries []Entry
	Lines   []Line
}

// Count returns how many lines were classified as kind.
func (r Result) Count(kind LineKind) int {
	n := 0
	for _, line := range r.Lines {
		if line.Kind == kind {
			n++
		}
	}
	return n
}

// Unparsable returns the non-blank lines that did not match the track grammar.
func (r Result) Unparsable() []Line {
	var out []Line
	for _, line := range r.Lines {
		if line.Kind == LineUnparsable {
			out = append(out, line)
		}
	}
	return out
}

// ParseText splits text into lines and parses them.
func ParseText(text string) Result {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return Parse(strings.Split(text, "\n"))
}

// Parse extracts track entries from raw description lines in source order.
// Each line is trimmed, lower-cased and has every Unicode space folded to
// an ASCII space before matching. Lines that do not
// match are left out of Entries; no sorting or deduplication takes place.
func Parse(lines []string) Result {
	lower := cases.Lower(language.Und)
	result := Result{Lines: make([]Line, 0, len(lines))}
	for i, raw := range lines {
		text := foldSpaces(lower.String(strings.TrimSpace(raw)))
		line := Line{Number: i + 1, Text: text}
		if text == "" {
			line.Kind = LineBlank
			result.Lines = append(result.Lines, line)
			continue
		}
		entry, ok := parseLine(text)
		if !ok {
			line.Kind = LineUnparsable
			result.Lines = append(result.Lines, line)
			continue
		}
		entry.Line = line.Number
		line.Kind = LineTrack
		result.Lines = append(result.Lines, line)
		result.Entries = append(result.Entries, entry)
	}
	return result
}

// foldSpaces maps non-ASCII whitespace such as U+00A0 to ' ' so the line
// patterns, whose \s is ASCII-only, still see the separators.
func foldSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if r != ' ' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
}

func parseLine(text string) (Entry, bool) {
	match := rangeLinePattern.FindStringSubmatch(text)
	if match == nil {
		match = trackLinePattern.FindStringSubmatch(text)
	}
	if match == nil {
		return Entry{}, false
	}
	return Entry{
		Timestamp: match[1],
		Artist:    strings.TrimSpace(match[2]),
		Title:     strings.TrimSpace(match[3]),
	}, true
}
