package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mixsplit/internal/config"
	"mixsplit/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Report description files without timestamps",
		Long: "Scan reads every description file in a directory and prints one line for\n" +
			"each file that contains no NN:NN timestamp. The exit status is zero\n" +
			"whether or not files are reported.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			dir := cfg.Paths.ScanDir
			if len(args) == 1 {
				if dir, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve scan directory: %w", err)
				}
			}

			report, err := scanner.New(cfg.Media.DescriptionExtension, logger).Scan(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range report.Missing {
				fmt.Fprintf(out, "No timestamps found in file: %s\n", name)
			}
			errOut := cmd.ErrOrStderr()
			for _, fileErr := range report.Errors {
				fmt.Fprintf(errOut, "Could not read file: %s (%v)\n", fileErr.Name, fileErr.Err)
			}
			return nil
		},
	}
	return cmd
}
