package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mixsplit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded split runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(cfg.History.Path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(out, "No history recorded at %s\n", cfg.History.Path)
				if !cfg.History.Enabled {
					fmt.Fprintln(out, "Set [history] enabled = true to record split runs.")
				}
				return nil
			}

			store, err := history.Open(cmd.Context(), cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				files, err := store.Files(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return fmt.Errorf("no files recorded for run %s", id)
				}
				view := newTableView(
					[]string{"File", "State", "Length", "Tracks", "Cut", "Exists", "Failed", "Invalid", "Error"},
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
				)
				for _, f := range files {
					view.addRow(
						f.Description,
						f.State,
						(time.Duration(f.DurationSeconds) * time.Second).String(),
						strconv.Itoa(f.Entries),
						strconv.Itoa(f.SegmentsCut),
						strconv.Itoa(f.SegmentsExists),
						strconv.Itoa(f.SegmentsFailed),
						strconv.Itoa(f.SegmentsInvalid),
						f.Error,
					)
				}
				fmt.Fprintln(out, view.render())
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			view := newTableView(
				[]string{"Run", "Started", "Dry run", "Files", "Archived", "Skipped", "Failed", "Cut"},
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			)
			for _, run := range runs {
				view.addRow(
					run.RunID,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					yesNo(run.DryRun),
					strconv.Itoa(run.Files),
					strconv.Itoa(run.Archived),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.SegmentsCut),
				)
			}
			fmt.Fprintln(out, view.render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-file results for one run ID")
	return cmd
}
