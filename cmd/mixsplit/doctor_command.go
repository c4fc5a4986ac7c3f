package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mixsplit/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories and media tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configDetail := ctx.configPath
			if !ctx.configSeen {
				configDetail += " (not found, using defaults)"
			}
			fmt.Fprintln(out, renderStatusLine("Config file", statusInfo, configDetail, colorize))
			historyDetail := "disabled"
			if cfg.History.Enabled {
				historyDetail = cfg.History.Path
			}
			fmt.Fprintln(out, renderStatusLine("History", statusInfo, historyDetail, colorize))
			fmt.Fprintln(out, renderStatusLine("Dry run default", statusInfo, yesNo(cfg.Split.DryRun), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
}
