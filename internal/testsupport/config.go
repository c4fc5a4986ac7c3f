package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mixsplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input directory is created; output, archive and state directories are
// left for the code under test to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "mixes")
	cfgVal.Paths.OutputDir = filepath.Join(base, "songs")
	cfgVal.Paths.ArchiveDir = filepath.Join(base, "processed")
	cfgVal.Paths.ScanDir = cfgVal.Paths.InputDir
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.History.Path = filepath.Join(cfgVal.Paths.StateDir, "history.db")
	if err := os.MkdirAll(cfgVal.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistory enables the run ledger.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// WithDryRun turns on dry-run mode.
func WithDryRun() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Split.DryRun = true
	}
}

// FFmpegStub behaves like ffmpeg -n: it answers -version and otherwise writes
// "track" to its final argument, failing when that file already exists.
const FFmpegStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version stub"
  exit 0
fi
for last; do :; done
if [ -e "$last" ]; then
  echo "File '$last' already exists. Exiting." >&2
  exit 1
fi
printf track > "$last"
`

// FFprobeStub answers -version and reports a 199.5 second audio file.
const FFprobeStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffprobe version stub"
  exit 0
fi
echo '{"streams":[{"index":0,"codec_type":"audio","duration":"199.5"}],"format":{"duration":"199.500000"}}'
`

// WithStubbedMediaTools writes ffmpeg and ffprobe stubs and makes them the
// only binaries on PATH.
func WithStubbedMediaTools() ConfigOption {
	return func(b *configBuilder) {
		binDir := BinDir(b.baseDir)
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		stubs := map[string]string{"ffmpeg": FFmpegStub, "ffprobe": FFprobeStub}
		for name, script := range stubs {
			if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}

// BinDir returns the directory holding stubbed binaries under base.
func BinDir(base string) string {
	return filepath.Join(base, "bin")
}
