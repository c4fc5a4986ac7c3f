package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixsplit/internal/deps"
	"mixsplit/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryReadable_Empty(t *testing.T) {
	result := CheckDirectoryReadable("test", "")
	if result.Passed || result.Detail != "path not configured" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestCheckDirectoryCreatable(t *testing.T) {
	root := t.TempDir()
	result := CheckDirectoryCreatable("songs", filepath.Join(root, "a", "b"))
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result = CheckDirectoryCreatable("songs", filepath.Join(file, "child"))
	if result.Passed {
		t.Fatal("expected failure below a regular file")
	}
}

func TestCheckBinary(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\necho 'ffprobe version 7.1 Copyright'\necho second line\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	result := CheckBinary(context.Background(), deps.Status{Name: "FFprobe", Available: true, Path: stub})
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "ffprobe version 7.1") {
		t.Fatalf("expected version in detail, got %q", result.Detail)
	}

	result = CheckBinary(context.Background(), deps.Status{Name: "FFmpeg", Detail: `binary "ffmpeg" not found`})
	if result.Passed || result.Detail != `binary "ffmpeg" not found` {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedMediaTools())

	results := RunAll(context.Background(), cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, got %#v", failed)
	}

	if err := os.RemoveAll(cfg.Paths.InputDir); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(testsupport.BinDir(testsupport.BaseDir(cfg)), "ffprobe")); err != nil {
		t.Fatal(err)
	}
	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) != 2 || failed[0].Name != "Input directory" || failed[1].Name != "FFprobe" {
		t.Fatalf("expected input directory and ffprobe to fail, got %#v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %#v", results)
	}
}
