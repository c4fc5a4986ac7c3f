package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mixsplit/internal/config"
	"mixsplit/internal/history"
	"mixsplit/internal/logging"
	"mixsplit/internal/preflight"
	"mixsplit/internal/runlock"
	"mixsplit/internal/splitter"
)

type splitFlags struct {
	dryRun     bool
	keepFailed bool
	input      string
	output     string
	archive    string
}

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Cut mixes into tracks and archive the processed pairs",
		Long: "Split pairs every description file in the input directory with the audio\n" +
			"file sharing its name, cuts one track per timestamp line with ffmpeg, and\n" +
			"moves the pair to the archive directory. Existing tracks are never\n" +
			"overwritten, so a rerun only cuts what is missing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applySplitFlags(*base, cmd, flags)
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runSplit(cmd.Context(), cmd, cfg, logger)
		},
	}

	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "d", false, "Describe cuts and moves without performing them")
	cmd.Flags().BoolVar(&flags.keepFailed, "keep-failed", false, "Leave a pair in place when any of its tracks fails")
	cmd.Flags().StringVar(&flags.input, "input", "", "Directory holding description and audio pairs")
	cmd.Flags().StringVar(&flags.output, "output", "", "Directory receiving the cut tracks")
	cmd.Flags().StringVar(&flags.archive, "archive", "", "Directory receiving processed pairs")
	return cmd
}

// applySplitFlags returns a copy of cfg with command-line overrides applied.
func applySplitFlags(cfg config.Config, cmd *cobra.Command, flags splitFlags) (*config.Config, error) {
	overrides := []struct {
		value  string
		target *string
		name   string
	}{
		{flags.input, &cfg.Paths.InputDir, "input"},
		{flags.output, &cfg.Paths.OutputDir, "output"},
		{flags.archive, &cfg.Paths.ArchiveDir, "archive"},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		expanded, err := config.ExpandPath(strings.TrimSpace(o.value))
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", o.name, err)
		}
		*o.target = expanded
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.Split.DryRun = flags.dryRun
	}
	if cmd.Flags().Changed("keep-failed") {
		cfg.Split.KeepFailed = flags.keepFailed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runSplit(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	if failed := preflight.Failed(preflight.RunAll(ctx, cfg)); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, f := range failed {
			details = append(details, f.Name+": "+f.Detail)
		}
		return fmt.Errorf("preflight failed (run `mixsplit doctor` for details):\n  %s", strings.Join(details, "\n  "))
	}

	if !cfg.Split.DryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
	}
	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("lock release failed", logging.Error(err))
		}
	}()

	report, runErr := splitter.NewFromConfig(cfg, logger).Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if cfg.History.Enabled {
		if err := recordHistory(context.WithoutCancel(ctx), cfg.History.Path, report); err != nil {
			logging.WarnWithContext(logger, "history not recorded", "history_record_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check history.path permissions"),
				logging.String(logging.FieldImpact, "run missing from `mixsplit history`"),
			)
		}
	}

	writeSplitReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
	return runErr
}

func recordHistory(ctx context.Context, path string, report splitter.BatchReport) error {
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, report)
}

func writeSplitReport(out io.Writer, report splitter.BatchReport, colorize bool) {
	if len(report.Files) == 0 {
		fmt.Fprintf(out, "No description files found in %s\n", report.InputDir)
		return
	}

	if report.DryRun {
		for _, line := range renderSectionHeader("Dry run", colorize) {
			fmt.Fprintln(out, line)
		}
		for _, file := range report.Files {
			for _, seg := range file.Segments {
				if seg.Status == splitter.SegmentDryRun {
					fmt.Fprintf(out, "would run: %s\n", seg.Command)
				}
			}
		}
		fmt.Fprintln(out)
	}

	view := newTableView(
		[]string{"File", "State", "Tracks", "Cut", "Exists", "Failed", "Invalid"},
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
	for _, file := range report.Files {
		cut := file.Count(splitter.SegmentCut) + file.Count(splitter.SegmentDryRun)
		view.addRow(
			file.Description,
			colorText(string(file.State), fileStateKind(file), colorize),
			strconv.Itoa(file.Entries),
			strconv.Itoa(cut),
			strconv.Itoa(file.Count(splitter.SegmentExists)),
			strconv.Itoa(file.Count(splitter.SegmentFailed)),
			strconv.Itoa(file.Count(splitter.SegmentInvalid)),
		)
	}
	summary := report.Summary()
	view.setFooter(
		"Total",
		"",
		"",
		strconv.Itoa(summary.Segments[splitter.SegmentCut]+summary.Segments[splitter.SegmentDryRun]),
		strconv.Itoa(summary.Segments[splitter.SegmentExists]),
		strconv.Itoa(summary.Segments[splitter.SegmentFailed]),
		strconv.Itoa(summary.Segments[splitter.SegmentInvalid]),
	)
	fmt.Fprintln(out, view.render())

	for _, file := range report.Files {
		if file.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", file.Description, file.Err)
		}
		for _, seg := range file.Segments {
			if seg.Status == splitter.SegmentFailed || seg.Status == splitter.SegmentInvalid {
				fmt.Fprintf(out, "%s track %d: %v\n", file.Description, seg.Index, seg.Err)
			}
		}
	}

	fmt.Fprintf(out, "Run %s: %d files, %d archived, %d skipped, %d failed (%s)\n",
		report.RunID,
		summary.Files,
		summary.Archived,
		summary.Skipped,
		summary.Failed,
		report.Elapsed().Round(time.Millisecond),
	)
}
