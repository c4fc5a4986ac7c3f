package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.input_dir")
	}
	if c.Paths.InputDir == c.Paths.ArchiveDir {
		return errors.New("paths.archive_dir must differ from paths.input_dir")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if strings.ContainsAny(c.Media.AudioExtension, `/\`) {
		return fmt.Errorf("media.audio_extension %q must not contain path separators", c.Media.AudioExtension)
	}
	if filepath.Base(c.Media.DescriptionExtension) != c.Media.DescriptionExtension {
		return fmt.Errorf("media.description_extension %q must not contain path separators", c.Media.DescriptionExtension)
	}
	if "."+c.Media.AudioExtension == c.Media.DescriptionExtension {
		return errors.New("media.audio_extension must differ from media.description_extension")
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.DuplicateThreshold < 0 || c.Split.DuplicateThreshold > 1 {
		return errors.New("split.duplicate_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
