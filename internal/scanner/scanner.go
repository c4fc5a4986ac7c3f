package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mixsplit/internal/logging"
	"mixsplit/internal/textutil"
	"mixsplit/internal/tracklist"
)

// FileError records a description file that could not be read.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Report summarizes one scan. Names are base names in sorted order.
type Report struct {
	Dir     string
	Scanned int
	Missing []string
	Errors  []FileError
}

// Clean reports whether every readable file contained a timestamp.
func (r Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Errors) == 0
}

// Scanner checks description files in a directory.
type Scanner struct {
	extension string
	logger    *slog.Logger
}

// New returns a Scanner for files ending in extension (for example ".description").
func New(extension string, logger *slog.Logger) *Scanner {
	extension = strings.TrimSpace(extension)
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &Scanner{
		extension: extension,
		logger:    logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan reads every description file in dir. Unreadable files are collected
// into Report.Errors; only a failure to list dir is returned as an error.
func (s *Scanner) Scan(ctx context.Context, dir string) (Report, error) {
	report := Report{Dir: dir}
	names, err := ListFiles(dir, s.extension)
	if err != nil {
		return report, err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++
		ok, err := s.check(filepath.Join(dir, name))
		if err != nil {
			s.logger.Warn("description unreadable",
				logging.String(logging.FieldFile, name),
				logging.Error(err),
			)
			report.Errors = append(report.Errors, FileError{Name: name, Err: err})
			continue
		}
		if !ok {
			s.logger.Debug("no timestamps found", logging.String(logging.FieldFile, name))
			report.Missing = append(report.Missing, name)
		}
	}
	s.logger.Info("scan complete",
		logging.String("dir", dir),
		logging.Int("scanned", report.Scanned),
		logging.Int("missing", len(report.Missing)),
		logging.Int("errors", len(report.Errors)),
	)
	return report, nil
}

func (s *Scanner) check(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	text, err := textutil.DecodeText(data)
	if err != nil {
		return false, err
	}
	return tracklist.HasTimestamp(text), nil
}

// ListFiles returns the sorted base names of regular files in dir whose name
// ends with extension. An empty extension matches every regular file.
func ListFiles(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if extension != "" && !strings.HasSuffix(name, extension) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
