package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixsplit/internal/config"
	"mixsplit/internal/testsupport"
)

type cliEnv struct {
	base       string
	configPath string
	inputDir   string
	outputDir  string
	archiveDir string
	stateDir   string
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedMediaTools(), testsupport.WithHistory())
	base := testsupport.BaseDir(cfg)
	t.Chdir(base)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliEnv{
		base:       base,
		configPath: filepath.Join(base, "mixsplit.toml"),
		inputDir:   cfg.Paths.InputDir,
		outputDir:  cfg.Paths.OutputDir,
		archiveDir: cfg.Paths.ArchiveDir,
		stateDir:   cfg.Paths.StateDir,
	}
	writeTestConfig(t, env.configPath, cfg)
	return env
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliEnv) addPair(t *testing.T, base, description string) {
	t.Helper()
	testsupport.WritePair(t, e.inputDir, base, description, "mp3")
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
