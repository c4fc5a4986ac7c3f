package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mixsplit/internal/config"
	"mixsplit/internal/fileutil"
	"mixsplit/internal/logging"
	"mixsplit/internal/media/ffmpeg"
	"mixsplit/internal/media/ffprobe"
	"mixsplit/internal/scanner"
	"mixsplit/internal/textutil"
	"mixsplit/internal/tracklist"
)

var (
	// ErrAudioMissing reports a description file without its paired audio file.
	ErrAudioMissing = errors.New("audio file missing")
	// ErrOutputExists reports a track file that is already present.
	ErrOutputExists = ffmpeg.ErrOutputExists
)

// Prober reports the duration of an audio file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Cutter extracts one segment of an audio file.
type Cutter interface {
	Cut(ctx context.Context, req ffmpeg.CutRequest) error
	Describe(req ffmpeg.CutRequest) string
}

// MoveFunc relocates a file, refusing to replace an existing destination.
type MoveFunc func(src, dst string) error

// Options is the explicit directory and behaviour configuration of a run.
type Options struct {
	InputDir             string
	OutputDir            string
	ArchiveDir           string
	DescriptionExtension string
	AudioExtension       string
	Codec                string
	DryRun               bool
	KeepFailed           bool
	DuplicateThreshold   float64
}

// OptionsFromConfig maps loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputDir:             cfg.Paths.InputDir,
		OutputDir:            cfg.Paths.OutputDir,
		ArchiveDir:           cfg.Paths.ArchiveDir,
		DescriptionExtension: cfg.Media.DescriptionExtension,
		AudioExtension:       cfg.Media.AudioExtension,
		Codec:                cfg.Media.Codec,
		DryRun:               cfg.Split.DryRun,
		KeepFailed:           cfg.Split.KeepFailed,
		DuplicateThreshold:   cfg.Split.DuplicateThreshold,
	}
}

// Splitter drives the cut-and-archive pipeline.
type Splitter struct {
	opts   Options
	prober Prober
	cutter Cutter
	move   MoveFunc
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a Splitter. Files are moved with fileutil.MoveFile unless
// WithMover overrides it.
func New(opts Options, prober Prober, cutter Cutter, logger *slog.Logger) *Splitter {
	if opts.DescriptionExtension == "" {
		opts.DescriptionExtension = ".description"
	}
	opts.AudioExtension = strings.TrimPrefix(opts.AudioExtension, ".")
	if opts.AudioExtension == "" {
		opts.AudioExtension = "mp3"
	}
	return &Splitter{
		opts:   opts,
		prober: prober,
		cutter: cutter,
		move:   fileutil.MoveFile,
		logger: logging.NewComponentLogger(logger, "splitter"),
		now:    time.Now,
	}
}

// NewFromConfig wires a Splitter with the real ffprobe and ffmpeg tools.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Splitter {
	return New(
		OptionsFromConfig(cfg),
		ffprobe.NewProber(cfg.Media.FFprobeBinary),
		ffmpeg.NewCutter(cfg.Media.FFmpegBinary, logger),
		logger,
	)
}

// WithMover replaces the function used to archive files.
func (s *Splitter) WithMover(fn MoveFunc) {
	if s != nil && fn != nil {
		s.move = fn
	}
}

// Options returns the run options in effect.
func (s *Splitter) Options() Options {
	return s.opts
}

// Run processes every description file in the input directory. The returned
// error is non-nil only when the directory cannot be listed or ctx is
// cancelled; per-file problems live in the report.
func (s *Splitter) Run(ctx context.Context) (BatchReport, error) {
	report := BatchReport{
		RunID:     uuid.NewString(),
		DryRun:    s.opts.DryRun,
		InputDir:  s.opts.InputDir,
		StartedAt: s.now(),
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, s.logger)

	names, err := scanner.ListFiles(s.opts.InputDir, s.opts.DescriptionExtension)
	if err != nil {
		report.FinishedAt = s.now()
		return report, err
	}
	logger.Info("split run started",
		logging.String("input_dir", s.opts.InputDir),
		logging.Int("descriptions", len(names)),
		logging.Bool("dry_run", s.opts.DryRun),
	)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = s.now()
			return report, err
		}
		report.Files = append(report.Files, s.ProcessFile(ctx, name))
	}

	report.FinishedAt = s.now()
	summary := report.Summary()
	logger.Info("split run finished",
		logging.Int("files", summary.Files),
		logging.Int("archived", summary.Archived),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("segments_cut", summary.Segments[SegmentCut]),
		logging.Int("segments_failed", summary.Segments[SegmentFailed]),
		logging.Duration("elapsed", report.Elapsed()),
	)
	return report, ctx.Err()
}

// ProcessFile handles one description file, named relative to the input
// directory. It never panics on bad input and never returns an error: the
// outcome is carried by the result.
func (s *Splitter) ProcessFile(ctx context.Context, name string) FileResult {
	audioName := strings.TrimSuffix(name, s.opts.DescriptionExtension) + "." + s.opts.AudioExtension
	result := FileResult{
		Description: name,
		Audio:       audioName,
		State:       StateDiscovered,
	}
	ctx = logging.WithFile(ctx, name)
	logger := logging.WithContext(ctx, s.logger)

	descPath := filepath.Join(s.opts.InputDir, name)
	audioPath := filepath.Join(s.opts.InputDir, audioName)

	data, err := os.ReadFile(descPath)
	if err != nil {
		return s.fail(logger, result, fmt.Errorf("read description: %w", err))
	}
	text, err := textutil.DecodeText(data)
	if err != nil {
		return s.fail(logger, result, fmt.Errorf("decode description: %w", err))
	}

	parsed := tracklist.ParseText(text)
	result.Entries = len(parsed.Entries)
	result.BlankLines = parsed.Count(tracklist.LineBlank)
	result.UnparsableLines = parsed.Count(tracklist.LineUnparsable)
	for _, line := range parsed.Unparsable() {
		logger.Debug("line skipped",
			logging.Int("line", line.Number),
			logging.String("text", line.Text),
		)
	}
	if len(parsed.Entries) == 0 {
		result.State = StateSkipped
		logging.WarnWithContext(logger, "no track entries found; pair left in place", "split_no_entries",
			logging.Int("unparsable_lines", result.UnparsableLines),
			logging.String(logging.FieldErrorHint, "check that lines look like \"0:00 artist - title\""),
			logging.String(logging.FieldImpact, "file not split"),
		)
		return result
	}
	result.State = StateParsed
	logger.Info("description parsed",
		logging.Int("entries", result.Entries),
		logging.Int("blank_lines", result.BlankLines),
		logging.Int("unparsable_lines", result.UnparsableLines),
	)

	result.Duplicates = tracklist.FindDuplicates(parsed.Entries, s.opts.DuplicateThreshold)
	for _, dup := range result.Duplicates {
		logging.WarnWithContext(logger, "possible duplicate track", "split_duplicate_track",
			logging.String("first", parsed.Entries[dup.First].Label()),
			logging.String("second", parsed.Entries[dup.Second].Label()),
			logging.Float64("similarity", dup.Similarity),
			logging.String(logging.FieldErrorHint, "both entries are still cut"),
			logging.String(logging.FieldImpact, "none"),
		)
	}

	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.fail(logger, result, fmt.Errorf("%w: %s", ErrAudioMissing, audioName))
		}
		return s.fail(logger, result, fmt.Errorf("stat audio: %w", err))
	}
	seconds, err := s.prober.Duration(ctx, audioPath)
	if err != nil {
		return s.fail(logger, result, fmt.Errorf("probe duration: %w", err))
	}
	result.Duration = ffprobe.WholeSeconds(seconds)

	for _, seg := range tracklist.Segments(parsed.Entries, result.Duration) {
		if err := ctx.Err(); err != nil {
			return s.fail(logger, result, err)
		}
		result.Segments = append(result.Segments, s.cutSegment(ctx, logger, audioPath, seg))
	}
	result.State = StateCut

	if s.opts.KeepFailed && result.HasProblems() {
		result.Retained = true
		logging.WarnWithContext(logger, "pair kept in input directory", "split_pair_retained",
			logging.Int("failed", result.Count(SegmentFailed)),
			logging.Int("invalid", result.Count(SegmentInvalid)),
			logging.String(logging.FieldErrorHint, "fix the description and rerun; existing tracks are skipped"),
			logging.String(logging.FieldImpact, "pair not archived"),
		)
		return result
	}

	if err := s.archive(logger, descPath, audioPath); err != nil {
		result.Err = err
		logging.ErrorWithContext(logger, "archive failed", "split_archive_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check archive_dir permissions and name collisions"),
		)
		return result
	}
	result.State = StateArchived
	return result
}

func (s *Splitter) cutSegment(ctx context.Context, logger *slog.Logger, audioPath string, seg tracklist.Segment) SegmentResult {
	out := SegmentResult{
		Index:  seg.Index,
		Start:  seg.Start,
		End:    seg.End,
		Artist: seg.Artist,
		Title:  seg.Title,
		Output: filepath.Join(s.opts.OutputDir, textutil.TrackFileName(seg.Artist, seg.Title, seg.Index, s.opts.AudioExtension)),
	}
	segLogger := logger.With(
		logging.Int(logging.FieldSegment, seg.Index),
		logging.String("output", filepath.Base(out.Output)),
	)

	if !seg.Valid() {
		out.Status = SegmentInvalid
		out.Err = seg.Err
		logging.WarnWithContext(segLogger, "segment skipped", "split_segment_invalid",
			logging.Error(seg.Err),
			logging.String(logging.FieldErrorHint, "check timestamp order and format in the description"),
			logging.String(logging.FieldImpact, "track not cut"),
		)
		return out
	}

	if _, err := os.Stat(out.Output); err == nil {
		out.Status = SegmentExists
		out.Err = fmt.Errorf("%w: %s", ErrOutputExists, out.Output)
		logging.WarnWithContext(segLogger, "track already exists, skipping", "split_output_exists",
			logging.String(logging.FieldErrorHint, "delete the track to cut it again"),
			logging.String(logging.FieldImpact, "none"),
		)
		return out
	}

	req := ffmpeg.CutRequest{
		Input:           audioPath,
		Output:          out.Output,
		StartSeconds:    seg.Start,
		DurationSeconds: seg.Duration(),
		Codec:           s.opts.Codec,
	}
	if s.opts.DryRun {
		out.Status = SegmentDryRun
		out.Command = s.cutter.Describe(req)
		segLogger.Info("dry run: would cut", logging.String("command", out.Command))
		return out
	}

	if err := s.cutter.Cut(ctx, req); err != nil {
		if errors.Is(err, ErrOutputExists) {
			out.Status = SegmentExists
			out.Err = err
			return out
		}
		out.Status = SegmentFailed
		out.Err = err
		logging.ErrorWithContext(segLogger, "cut failed", "split_cut_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run the ffmpeg command by hand to inspect the error"),
		)
		return out
	}
	out.Status = SegmentCut
	segLogger.Info("track cut",
		logging.String("start", tracklist.FormatSeconds(seg.Start)),
		logging.String("end", tracklist.FormatSeconds(seg.End)),
	)
	return out
}

// archive moves the audio file first so a half-finished archive leaves the
// description behind, which the next run reports as missing audio.
func (s *Splitter) archive(logger *slog.Logger, descPath, audioPath string) error {
	moves := [][2]string{
		{audioPath, filepath.Join(s.opts.ArchiveDir, filepath.Base(audioPath))},
		{descPath, filepath.Join(s.opts.ArchiveDir, filepath.Base(descPath))},
	}
	for _, mv := range moves {
		if _, err := os.Lstat(mv[1]); err == nil {
			return fmt.Errorf("archive %s: %w", filepath.Base(mv[0]), fileutil.ErrDestinationExists)
		}
	}
	for _, mv := range moves {
		if s.opts.DryRun {
			logger.Info("dry run: would move", logging.String("from", mv[0]), logging.String("to", mv[1]))
			continue
		}
		if err := s.move(mv[0], mv[1]); err != nil {
			return fmt.Errorf("archive %s: %w", filepath.Base(mv[0]), err)
		}
		logger.Debug("archived", logging.String("to", mv[1]))
	}
	if !s.opts.DryRun {
		logger.Info("pair archived", logging.String("archive_dir", s.opts.ArchiveDir))
	}
	return nil
}

func (s *Splitter) fail(logger *slog.Logger, result FileResult, err error) FileResult {
	result.State = StateFailed
	result.Err = err
	logging.ErrorWithContext(logger, "file failed", "split_file_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "the pair stays in the input directory"),
	)
	return result
}
