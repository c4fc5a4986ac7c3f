package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"mixsplit/internal/logging"
)

var (
	// ErrCutFailed wraps any failure of the ffmpeg process.
	ErrCutFailed = errors.New("ffmpeg cut failed")
	// ErrOutputExists reports a cut whose destination is already present.
	ErrOutputExists = errors.New("output already exists")
)

// CutRequest describes one segment to extract.
type CutRequest struct {
	Input           string
	Output          string
	StartSeconds    int
	DurationSeconds int
	// Codec is passed to -c; empty means "copy".
	Codec string
}

// CommandRunner executes a binary and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Cutter runs ffmpeg to extract segments.
type Cutter struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// NewCutter constructs a Cutter for the given ffmpeg binary.
func NewCutter(binary string, logger *slog.Logger) *Cutter {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Cutter{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (c *Cutter) WithCommandRunner(r CommandRunner) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Binary returns the ffmpeg executable the cutter invokes.
func (c *Cutter) Binary() string {
	return c.binary
}

// Cut extracts req's time range into req.Output. A partially written output
// is removed when ffmpeg fails.
func (c *Cutter) Cut(ctx context.Context, req CutRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if _, err := os.Stat(req.Output); err == nil {
		return fmt.Errorf("%w: %s", ErrOutputExists, req.Output)
	}
	args := BuildArgs(req)
	c.logger.Debug("executing ffmpeg",
		logging.String("input", req.Input),
		logging.String("output", req.Output),
		logging.Int("start", req.StartSeconds),
		logging.Int("duration", req.DurationSeconds),
	)
	output, err := c.run(ctx, c.binary, args...)
	if err != nil {
		if _, statErr := os.Stat(req.Output); statErr == nil {
			_ = os.Remove(req.Output)
		}
		return fmt.Errorf("%w: %s: %w: %s", ErrCutFailed, req.Output, err, lastLine(output))
	}
	return nil
}

// Describe renders the command Cut would run, for dry runs.
func (c *Cutter) Describe(req CutRequest) string {
	parts := append([]string{c.binary}, BuildArgs(req)...)
	for i, part := range parts {
		if strings.ContainsAny(part, " \t'\"()") {
			parts[i] = strconv.Quote(part)
		}
	}
	return strings.Join(parts, " ")
}

// BuildArgs returns the ffmpeg argument list for req. -ss is placed before
// -i for fast input seeking.
func BuildArgs(req CutRequest) []string {
	codec := strings.TrimSpace(req.Codec)
	if codec == "" {
		codec = "copy"
	}
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-n",
		"-ss", strconv.Itoa(req.StartSeconds),
		"-t", strconv.Itoa(req.DurationSeconds),
		"-i", req.Input,
		"-map", "0:a",
		"-c", codec,
		req.Output,
	}
}

func validate(req CutRequest) error {
	switch {
	case strings.TrimSpace(req.Input) == "":
		return errors.New("ffmpeg cut: input path is required")
	case strings.TrimSpace(req.Output) == "":
		return errors.New("ffmpeg cut: output path is required")
	case req.StartSeconds < 0:
		return fmt.Errorf("ffmpeg cut: negative start %d", req.StartSeconds)
	case req.DurationSeconds <= 0:
		return fmt.Errorf("ffmpeg cut: non-positive duration %d", req.DurationSeconds)
	}
	return nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
