package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMedia()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"MIXSPLIT_INPUT_DIR", &c.Paths.InputDir},
		{"MIXSPLIT_OUTPUT_DIR", &c.Paths.OutputDir},
		{"MIXSPLIT_ARCHIVE_DIR", &c.Paths.ArchiveDir},
		{"MIXSPLIT_STATE_DIR", &c.Paths.StateDir},
		{"MIXSPLIT_FFMPEG", &c.Media.FFmpegBinary},
		{"MIXSPLIT_FFPROBE", &c.Media.FFprobeBinary},
		{"MIXSPLIT_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.env); ok && strings.TrimSpace(value) != "" {
			*o.target = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		c.Paths.ArchiveDir = defaultArchiveDir
	}
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScanDir) == "" {
		c.Paths.ScanDir = defaultScanDir
	}
	if c.Paths.ScanDir, err = expandPath(c.Paths.ScanDir); err != nil {
		return fmt.Errorf("paths.scan_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMedia() {
	c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary)
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
	c.Media.FFprobeBinary = strings.TrimSpace(c.Media.FFprobeBinary)
	if c.Media.FFprobeBinary == "" {
		c.Media.FFprobeBinary = defaultFFprobeBinary
	}
	c.Media.DescriptionExtension = strings.TrimSpace(c.Media.DescriptionExtension)
	if c.Media.DescriptionExtension == "" {
		c.Media.DescriptionExtension = defaultDescriptionExtension
	}
	if !strings.HasPrefix(c.Media.DescriptionExtension, ".") {
		c.Media.DescriptionExtension = "." + c.Media.DescriptionExtension
	}
	c.Media.AudioExtension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Media.AudioExtension)), ".")
	if c.Media.AudioExtension == "" {
		c.Media.AudioExtension = defaultAudioExtension
	}
	c.Media.Codec = strings.TrimSpace(c.Media.Codec)
	if c.Media.Codec == "" {
		c.Media.Codec = defaultCodec
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.StateDir, defaultHistoryFile)
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
