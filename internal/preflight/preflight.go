package preflight

import (
	"context"

	"mixsplit/internal/config"
	"mixsplit/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check relevant to a split run.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryReadable("Input directory", cfg.Paths.InputDir),
		CheckDirectoryCreatable("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryCreatable("Archive directory", cfg.Paths.ArchiveDir),
		CheckDirectoryCreatable("State directory", cfg.Paths.StateDir),
	}
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, CheckBinary(ctx, status))
	}
	return results
}

// CheckSystemDeps resolves the media tools named in cfg.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.MediaRequirements(cfg.Media.FFmpegBinary, cfg.Media.FFprobeBinary))
}

// Failed returns the checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
