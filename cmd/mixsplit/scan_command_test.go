package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanCommand(t *testing.T) {
	env := setupCLIEnv(t)
	writeDescription := func(name, content string) {
		if err := os.WriteFile(filepath.Join(env.inputDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeDescription("good.description", "00:00 a - b\n")
	writeDescription("bad.description", "no times here\n")
	writeDescription("short.description", "1:30 a - b\n")

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := "No timestamps found in file: bad.description\nNo timestamps found in file: short.description\n"
	if out != want {
		t.Fatalf("unexpected scan output:\n%s", out)
	}

	other := filepath.Join(env.base, "other")
	if err := os.MkdirAll(other, 0o755); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, []string{"scan", other}, env.configPath)
	if err != nil {
		t.Fatalf("scan dir: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output for empty directory, got %q", out)
	}

	if _, _, err := runCLI(t, []string{"scan", filepath.Join(env.base, "absent")}, env.configPath); err == nil {
		t.Fatal("expected listing failure for missing directory")
	}
}
