package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mixsplit/internal/config"
)

func TestLoadDefaultConfigResolvesRelativeToWorkingDirectory(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Paths.InputDir != filepath.Join(wd, "mixes") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(wd, "songs") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.ArchiveDir != filepath.Join(wd, "processed") {
		t.Fatalf("unexpected archive dir: %q", cfg.Paths.ArchiveDir)
	}
	if cfg.Paths.ScanDir != wd {
		t.Fatalf("unexpected scan dir: %q", cfg.Paths.ScanDir)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "mixsplit")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.History.Path != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled by default")
	}
	if cfg.Media.DescriptionExtension != ".description" {
		t.Fatalf("unexpected description extension: %q", cfg.Media.DescriptionExtension)
	}
	if cfg.Media.AudioExtension != "mp3" {
		t.Fatalf("unexpected audio extension: %q", cfg.Media.AudioExtension)
	}
	if cfg.Media.Codec != "copy" {
		t.Fatalf("unexpected codec: %q", cfg.Media.Codec)
	}
	if cfg.Split.DryRun {
		t.Fatal("expected dry run disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mixsplit.toml")

	type payload struct {
		Paths struct {
			InputDir   string `toml:"input_dir"`
			OutputDir  string `toml:"output_dir"`
			ArchiveDir string `toml:"archive_dir"`
		} `toml:"paths"`
		Media struct {
			AudioExtension       string `toml:"audio_extension"`
			DescriptionExtension string `toml:"description_extension"`
		} `toml:"media"`
		Split struct {
			KeepFailed bool `toml:"keep_failed"`
		} `toml:"split"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.InputDir = filepath.Join(tempDir, "in")
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Paths.ArchiveDir = filepath.Join(tempDir, "done")
	custom.Media.AudioExtension = ".M4A"
	custom.Media.DescriptionExtension = "txt"
	custom.Split.KeepFailed = true
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.InputDir != custom.Paths.InputDir {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Media.AudioExtension != "m4a" {
		t.Fatalf("expected normalized audio extension, got %q", cfg.Media.AudioExtension)
	}
	if cfg.Media.DescriptionExtension != ".txt" {
		t.Fatalf("expected normalized description extension, got %q", cfg.Media.DescriptionExtension)
	}
	if !cfg.Split.KeepFailed {
		t.Fatal("expected keep_failed from file")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if got := cfg.AudioFileName("Mix One.txt"); got != "Mix One.m4a" {
		t.Fatalf("unexpected audio file name: %q", got)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mixsplit.toml")
	contents := "[paths]\ninput_dir = \"" + filepath.Join(tempDir, "file-in") + "\"\n[media]\nffmpeg_binary = \"file-ffmpeg\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	envIn := filepath.Join(tempDir, "env-in")
	t.Setenv("MIXSPLIT_INPUT_DIR", envIn)
	t.Setenv("MIXSPLIT_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("MIXSPLIT_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.InputDir != envIn {
		t.Errorf("expected input dir from env, got %q", cfg.Paths.InputDir)
	}
	if cfg.Media.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg binary from env, got %q", cfg.Media.FFmpegBinary)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Paths.InputDir != "mixes" {
		t.Fatalf("expected sample input dir mixes, got %q", cfg.Paths.InputDir)
	}
	if cfg.Media.Codec != "copy" {
		t.Fatalf("expected sample codec copy, got %q", cfg.Media.Codec)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(encoded, "input_dir") {
		t.Fatalf("encoded config missing input_dir: %s", encoded)
	}
	var decoded config.Config
	if err := toml.Unmarshal([]byte(encoded), &decoded); err != nil {
		t.Fatalf("unmarshal encoded config: %v", err)
	}
	if decoded.Media.AudioExtension != cfg.Media.AudioExtension {
		t.Fatalf("audio extension lost in round trip: %q", decoded.Media.AudioExtension)
	}
}

func TestEnsureDirectoriesCreatesOutputArchiveAndState(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "in")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.ArchiveDir = filepath.Join(base, "done")
	cfg.Paths.StateDir = filepath.Join(base, "state")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.ArchiveDir, cfg.Paths.StateDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
	if _, err := os.Stat(cfg.Paths.InputDir); !os.IsNotExist(err) {
		t.Fatalf("input dir must not be created, stat err=%v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = cfg.Paths.InputDir
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when output dir equals input dir")
	}

	cfg = config.Default()
	cfg.Paths.ArchiveDir = cfg.Paths.InputDir
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when archive dir equals input dir")
	}

	cfg = config.Default()
	cfg.Split.DuplicateThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for duplicate threshold above 1")
	}

	cfg = config.Default()
	cfg.Media.AudioExtension = "a/b"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for audio extension with separator")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mixsplit.toml")
	content := "[paths]\ninput_dir = \"" + filepath.Join(tempDir, "in") + "\"\n\n[logging]\nformat = \"jsn\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected unknown logging.format to be rejected")
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format in error, got %v", err)
	}
}
